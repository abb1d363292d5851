package postgres

import (
	"dashboard-service/internal/config"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB_Status bool

func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	DB_Status = true

	return db, nil
}

func RetryConnectOnFailed(wait_amount time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	if DB_Status {
		log.Printf("false database lost connection alert! abort retry")
		return
	}

	if *db != nil {
		cur_db := *db
		err := cur_db.Ping()
		if err == nil {
			log.Printf("database connection is healthy, no retry needed")
			return
		}
		log.Printf("failed to ping target database: %s, retry db connection\n", err)
	} else {
		log.Printf("database connection is nil, attempting to reconnect...")
	}

	newDB, err := ConnectAndCreateDB(cfg)
	if err == nil {
		*db = newDB
		log.Printf("database retry connection successfully\n")
		return
	}
	log.Printf("failed to retry connect database: %s, next retry in %v\n", err, wait_amount)
	time.Sleep(wait_amount)

	RetryConnectOnFailed(wait_amount, db, cfg)
}

// Migrate creates the service tables when they do not exist yet.
func Migrate(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		source_id        TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		category         TEXT NOT NULL,
		mode             TEXT NOT NULL DEFAULT 'file',
		accepted_formats TEXT NOT NULL DEFAULT 'csv,json,xlsx',
		refresh_cadence  TEXT NOT NULL DEFAULT 'monthly',
		last_refresh     TIMESTAMPTZ,
		row_count        INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS upload_history (
		id           BIGSERIAL PRIMARY KEY,
		source_id    TEXT NOT NULL REFERENCES sources(source_id),
		dataset_key  TEXT NOT NULL,
		filename     TEXT NOT NULL,
		format       TEXT NOT NULL,
		rows         INTEGER NOT NULL DEFAULT 0,
		uploaded_at  TIMESTAMPTZ NOT NULL,
		published_at TIMESTAMPTZ,
		status       TEXT NOT NULL DEFAULT 'pending'
	);

	CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run schema migration: %w", err)
	}
	return nil
}
