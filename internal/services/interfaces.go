package services

import (
	"context"
	"dashboard-service/internal/event"
	"dashboard-service/internal/models"
	"time"
)

// SourceStore is the source catalog persistence contract.
type SourceStore interface {
	GetBySourceID(sourceID string) (*models.Source, error)
	List() ([]models.Source, error)
	UpdateConfig(sourceID string, mode, acceptedFormats, refreshCadence *string) error
	UpdatePublishStats(sourceID string, rowCount int, publishedAt time.Time) error
}

// HistoryStore is the upload audit-trail persistence contract.
type HistoryStore interface {
	Insert(record *models.UploadHistoryRecord) (int64, error)
	GetByID(id int64) (*models.UploadHistoryRecord, error)
	MarkPublished(id int64, publishedAt time.Time) error
	Latest(limit int) ([]models.UploadHistoryRecord, error)
}

// UserStore is the admin account persistence contract.
type UserStore interface {
	GetByUsername(username string) (*models.User, error)
	CreateIfAbsent(username, passwordHash string) (bool, error)
}

// RawUploadArchiver mirrors raw upload audit copies to object storage.
type RawUploadArchiver interface {
	ArchiveRawUpload(ctx context.Context, objectName string, data []byte, contentType string) error
}

// PublishNotifier announces successful publishes to interested consumers.
type PublishNotifier interface {
	PublishEvent(ctx context.Context, ev event.PublishEvent) error
}
