package repository

import (
	"dashboard-service/internal/models"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

type UploadHistoryRepository struct {
	db *sqlx.DB
}

func NewUploadHistoryRepository(db *sqlx.DB) *UploadHistoryRepository {
	return &UploadHistoryRepository{db: db}
}

// Insert appends one audit entry and returns its id. History rows are never
// deleted; the table is the upload audit trail.
func (r *UploadHistoryRepository) Insert(record *models.UploadHistoryRecord) (int64, error) {
	query := `
		INSERT INTO upload_history (source_id, dataset_key, filename, format, rows, uploaded_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.Get(&id, query,
		record.SourceID, record.DatasetKey, record.Filename,
		record.Format, record.Rows, record.UploadedAt, record.Status)
	if err != nil {
		slog.Error("Failed to insert upload history record",
			"source_id", record.SourceID,
			"filename", record.Filename,
			"error", err)
		return 0, fmt.Errorf("failed to insert upload history record: %w", err)
	}

	record.ID = id
	slog.Info("Recorded upload",
		"upload_id", id,
		"source_id", record.SourceID,
		"filename", record.Filename,
		"status", record.Status)
	return id, nil
}

func (r *UploadHistoryRepository) GetByID(id int64) (*models.UploadHistoryRecord, error) {
	var record models.UploadHistoryRecord
	query := `
		SELECT id, source_id, dataset_key, filename, format, rows, uploaded_at, published_at, status
		FROM upload_history
		WHERE id = $1`

	err := r.db.Get(&record, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("upload %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get upload history record %d: %w", id, err)
	}

	return &record, nil
}

// MarkPublished flips a history row to published with its publish timestamp.
func (r *UploadHistoryRepository) MarkPublished(id int64, publishedAt time.Time) error {
	query := `
		UPDATE upload_history SET
			status = $2,
			published_at = $3
		WHERE id = $1`

	result, err := r.db.Exec(query, id, models.StatusPublished, publishedAt)
	if err != nil {
		return fmt.Errorf("failed to mark upload %d published: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("upload %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// Latest returns the most recent history rows, newest first.
func (r *UploadHistoryRepository) Latest(limit int) ([]models.UploadHistoryRecord, error) {
	var records []models.UploadHistoryRecord
	query := `
		SELECT id, source_id, dataset_key, filename, format, rows, uploaded_at, published_at, status
		FROM upload_history
		ORDER BY uploaded_at DESC
		LIMIT $1`

	err := r.db.Select(&records, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload history: %w", err)
	}

	if records == nil {
		records = []models.UploadHistoryRecord{}
	}
	return records, nil
}
