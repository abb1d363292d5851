package services

import (
	"context"
	"dashboard-service/internal/event"
	"dashboard-service/internal/filestore"
	"dashboard-service/internal/models"
	"dashboard-service/internal/parser"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/schema"
	"dashboard-service/utils"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const maxSampleRows = 10

// UploadService orchestrates the upload pipeline: parse, validate, record a
// preview history entry, and on confirmation publish the document and update
// the source catalog.
type UploadService struct {
	sources  SourceStore
	history  HistoryStore
	stage    repository.StageRepository
	store    *filestore.FileStore
	schemas  *schema.Registry
	archiver RawUploadArchiver
	notifier PublishNotifier
}

// NewUploadService wires the pipeline. archiver and notifier may be nil when
// MinIO or RabbitMQ are not configured.
func NewUploadService(
	sources SourceStore,
	history HistoryStore,
	stage repository.StageRepository,
	store *filestore.FileStore,
	schemas *schema.Registry,
	archiver RawUploadArchiver,
	notifier PublishNotifier,
) *UploadService {
	return &UploadService{
		sources:  sources,
		history:  history,
		stage:    stage,
		store:    store,
		schemas:  schemas,
		archiver: archiver,
		notifier: notifier,
	}
}

// Preview runs the upload step: save an audit copy, parse, conditionally
// validate, record a preview history entry, and stage the full payload for
// the publish step. The response carries at most ten sample rows.
func (s *UploadService) Preview(ctx context.Context, sourceID, filename string, content []byte) (*models.PreviewResponse, error) {
	if sourceID == "" || filename == "" {
		return nil, fmt.Errorf("file and sourceId are required: %w", models.ErrBadRequest)
	}

	format := utils.FileExtension(filename)
	if !parser.IsSupportedFormat(format) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, format)
	}

	source, err := s.sources.GetBySourceID(sourceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.SaveRawUpload(filename, content); err != nil {
		return nil, err
	}
	s.archiveRawUpload(ctx, filename, content)

	parsed, err := parser.Parse(content, format)
	if err != nil {
		s.recordFailure(source.SourceID, filename, format)
		return nil, err
	}

	// Field validation only applies to dashboard-format JSON (a single
	// wrapped object); tabular uploads pass through as valid.
	validation := models.ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}
	if parsed.Wrapped {
		validation = s.schemas.Validate(source.SourceID, parsed.Rows[0])
	}

	record := &models.UploadHistoryRecord{
		SourceID:   source.SourceID,
		DatasetKey: DatasetKey(source.SourceID),
		Filename:   filename,
		Format:     format,
		Rows:       parsed.RowCount,
		UploadedAt: time.Now(),
		Status:     models.StatusPreview,
	}
	uploadID, err := s.history.Insert(record)
	if err != nil {
		return nil, err
	}

	if err := s.stage.Stage(ctx, uploadID, parsed.Document()); err != nil {
		// Preview still works; publish will need the payload resent.
		slog.Warn("Failed to stage preview payload", "upload_id", uploadID, "error", err)
	}

	sample := parsed.Rows
	if len(sample) > maxSampleRows {
		sample = sample[:maxSampleRows]
	}

	return &models.PreviewResponse{
		UploadID:   uploadID,
		Filename:   filename,
		Format:     format,
		Headers:    parsed.Headers,
		SampleRows: sample,
		RowCount:   parsed.RowCount,
		Validation: validation,
	}, nil
}

// Publish writes a previewed payload to the blob store and flips the history
// and source state. data may be nil, in which case the payload staged at
// preview time is published; supplying data keeps the original client
// contract working.
func (s *UploadService) Publish(ctx context.Context, uploadID int64, data any) (string, error) {
	record, err := s.history.GetByID(uploadID)
	if err != nil {
		return "", err
	}

	if data == nil {
		staged, ok, err := s.stage.Get(ctx, uploadID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("data payload required for publishing: %w", models.ErrBadRequest)
		}
		data = staged
	}

	dest, err := s.store.WritePublished(record.SourceID, data)
	if err != nil {
		return "", err
	}

	publishedAt := time.Now()
	if err := s.history.MarkPublished(uploadID, publishedAt); err != nil {
		return "", err
	}

	rowCount := publishedRowCount(data)
	if err := s.sources.UpdatePublishStats(record.SourceID, rowCount, publishedAt); err != nil {
		return "", err
	}

	if err := s.stage.Delete(ctx, uploadID); err != nil {
		slog.Warn("Failed to clear staged payload", "upload_id", uploadID, "error", err)
	}
	s.notifyPublished(ctx, record, uploadID, rowCount, dest, publishedAt)

	slog.Info("Published document",
		"upload_id", uploadID,
		"source_id", record.SourceID,
		"rows", rowCount,
		"dest", dest)
	return dest, nil
}

func (s *UploadService) recordFailure(sourceID, filename, format string) {
	record := &models.UploadHistoryRecord{
		SourceID:   sourceID,
		DatasetKey: DatasetKey(sourceID),
		Filename:   filename,
		Format:     format,
		UploadedAt: time.Now(),
		Status:     models.StatusFailed,
	}
	if _, err := s.history.Insert(record); err != nil {
		slog.Error("Failed to record failed upload", "source_id", sourceID, "error", err)
	}
}

func (s *UploadService) archiveRawUpload(ctx context.Context, filename string, content []byte) {
	if s.archiver == nil {
		return
	}
	objectName := utils.GenerateSafeFilename(filename)
	if err := s.archiver.ArchiveRawUpload(ctx, objectName, content, "application/octet-stream"); err != nil {
		// The local audit copy already exists; the mirror is best effort.
		slog.Warn("Failed to archive raw upload", "object", objectName, "error", err)
	}
}

func (s *UploadService) notifyPublished(ctx context.Context, record *models.UploadHistoryRecord, uploadID int64, rows int, dest string, publishedAt time.Time) {
	if s.notifier == nil {
		return
	}
	ev := event.PublishEvent{
		SourceID:    record.SourceID,
		DatasetKey:  record.DatasetKey,
		UploadID:    uploadID,
		Rows:        rows,
		Dest:        dest,
		PublishedAt: publishedAt,
	}
	if err := s.notifier.PublishEvent(ctx, ev); err != nil {
		slog.Warn("Failed to send publish event", "source_id", record.SourceID, "error", err)
	}
}

// DatasetKey derives the dataset key from a source identifier: its last
// path segment.
func DatasetKey(sourceID string) string {
	parts := strings.Split(sourceID, "/")
	return parts[len(parts)-1]
}

// publishedRowCount derives the catalog row count from a published payload:
// array length for tabular documents, one for a single object.
func publishedRowCount(data any) int {
	switch v := data.(type) {
	case []any:
		return len(v)
	case []map[string]any:
		return len(v)
	default:
		return 1
	}
}
