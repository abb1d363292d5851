package repository

import (
	"dashboard-service/internal/models"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

type SourceRepository struct {
	db *sqlx.DB
}

func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// Seed upserts the known source catalog. Insert-if-absent keyed by source_id,
// so reruns at startup are idempotent and never clobber operator config.
func (r *SourceRepository) Seed(sources []models.Source) error {
	if len(sources) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sources (source_id, name, category, mode, accepted_formats, refresh_cadence)
		VALUES (:source_id, :name, :category, :mode, :accepted_formats, :refresh_cadence)
		ON CONFLICT (source_id) DO NOTHING`

	for _, source := range sources {
		if _, err := tx.NamedExec(query, source); err != nil {
			return fmt.Errorf("failed to seed source %s: %w", source.SourceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit source seed: %w", err)
	}

	slog.Info("Seeded source catalog", "count", len(sources))
	return nil
}

func (r *SourceRepository) GetBySourceID(sourceID string) (*models.Source, error) {
	var source models.Source
	query := `
		SELECT source_id, name, category, mode, accepted_formats, refresh_cadence, last_refresh, row_count
		FROM sources
		WHERE source_id = $1`

	err := r.db.Get(&source, query, sourceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("source %s: %w", sourceID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get source %s: %w", sourceID, err)
	}

	return &source, nil
}

func (r *SourceRepository) List() ([]models.Source, error) {
	var sources []models.Source
	query := `
		SELECT source_id, name, category, mode, accepted_formats, refresh_cadence, last_refresh, row_count
		FROM sources
		ORDER BY category, name`

	err := r.db.Select(&sources, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	return sources, nil
}

// UpdateConfig applies a partial config update. Nil fields are left untouched.
func (r *SourceRepository) UpdateConfig(sourceID string, mode, acceptedFormats, refreshCadence *string) error {
	query := `
		UPDATE sources SET
			mode = COALESCE($2, mode),
			accepted_formats = COALESCE($3, accepted_formats),
			refresh_cadence = COALESCE($4, refresh_cadence)
		WHERE source_id = $1`

	result, err := r.db.Exec(query, sourceID, mode, acceptedFormats, refreshCadence)
	if err != nil {
		return fmt.Errorf("failed to update source config: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("source %s: %w", sourceID, models.ErrNotFound)
	}

	slog.Info("Updated source config", "source_id", sourceID)
	return nil
}

// UpdatePublishStats records a successful publish: row count and lastRefresh
// always reflect the most recently published document, never a preview.
func (r *SourceRepository) UpdatePublishStats(sourceID string, rowCount int, publishedAt time.Time) error {
	query := `
		UPDATE sources SET
			last_refresh = $2,
			row_count = $3
		WHERE source_id = $1`

	result, err := r.db.Exec(query, sourceID, publishedAt, rowCount)
	if err != nil {
		return fmt.Errorf("failed to update publish stats: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("source %s: %w", sourceID, models.ErrNotFound)
	}

	slog.Info("Updated publish stats", "source_id", sourceID, "row_count", rowCount)
	return nil
}
