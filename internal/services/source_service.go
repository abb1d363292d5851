package services

import (
	"dashboard-service/internal/filestore"
	"dashboard-service/internal/models"
	"fmt"
	"strings"
	"time"
)

const historyLimit = 100

// SourceService serves the admin source-config, history, and health views.
type SourceService struct {
	sources SourceStore
	history HistoryStore
	store   *filestore.FileStore
	policy  FreshnessPolicy
}

func NewSourceService(sources SourceStore, history HistoryStore, store *filestore.FileStore, policy FreshnessPolicy) *SourceService {
	if policy == nil {
		policy = DefaultFreshnessPolicy
	}
	return &SourceService{
		sources: sources,
		history: history,
		store:   store,
		policy:  policy,
	}
}

// List returns every source joined with its published-document metadata.
func (s *SourceService) List() ([]models.SourceWithBlobInfo, error) {
	sources, err := s.sources.List()
	if err != nil {
		return nil, err
	}

	enriched := make([]models.SourceWithBlobInfo, 0, len(sources))
	for _, src := range sources {
		info := s.store.GetInfo(src.SourceID)
		enriched = append(enriched, models.SourceWithBlobInfo{
			SourceID:              src.SourceID,
			Name:                  src.Name,
			Category:              src.Category,
			Mode:                  src.Mode,
			AcceptedFormats:       splitFormats(src.AcceptedFormats),
			RefreshCadence:        src.RefreshCadence,
			LastRefresh:           src.LastRefresh,
			RowCount:              src.RowCount,
			HasProcessedData:      info.Exists,
			ProcessedLastModified: info.LastModified,
			ProcessedSize:         info.Size,
		})
	}
	return enriched, nil
}

// Update applies a partial source-config update.
func (s *SourceService) Update(req models.UpdateSourceRequest) error {
	if req.SourceID == "" {
		return fmt.Errorf("sourceId is required: %w", models.ErrBadRequest)
	}

	var formats *string
	if req.AcceptedFormats != nil {
		joined := strings.Join(*req.AcceptedFormats, ",")
		formats = &joined
	}

	return s.sources.UpdateConfig(req.SourceID, req.Mode, formats, req.RefreshCadence)
}

// History returns the most recent upload-history rows, newest first.
func (s *SourceService) History() ([]models.UploadHistoryRecord, error) {
	return s.history.Latest(historyLimit)
}

// Health derives the freshness classification for every source from the
// blob store's last-modified metadata.
func (s *SourceService) Health(now time.Time) ([]models.SourceHealth, error) {
	sources, err := s.sources.List()
	if err != nil {
		return nil, err
	}

	health := make([]models.SourceHealth, 0, len(sources))
	for _, src := range sources {
		info := s.store.GetInfo(src.SourceID)
		freshness, staleMinutes := ClassifyFreshness(now, info.LastModified, src.RefreshCadence, s.policy)

		lastRefresh := src.LastRefresh
		if lastRefresh == nil {
			lastRefresh = info.LastModified
		}

		health = append(health, models.SourceHealth{
			SourceID:       src.SourceID,
			Name:           src.Name,
			Category:       src.Category,
			RefreshCadence: src.RefreshCadence,
			LastRefresh:    lastRefresh,
			StaleMinutes:   staleMinutes,
			Freshness:      freshness,
			RowCount:       src.RowCount,
		})
	}
	return health, nil
}

func splitFormats(formats string) []string {
	if formats == "" {
		return []string{}
	}
	parts := strings.Split(formats, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
