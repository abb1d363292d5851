package repository

import (
	"dashboard-service/internal/models"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash FROM users WHERE username = $1`

	err := r.db.Get(&user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}

	return &user, nil
}

// CreateIfAbsent inserts a user unless the username is already taken.
// Returns true when a new row was created.
func (r *UserRepository) CreateIfAbsent(username, passwordHash string) (bool, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`

	result, err := r.db.Exec(query, username, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		slog.Info("Created user", "username", username)
	}
	return rowsAffected > 0, nil
}
