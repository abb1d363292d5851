package services

import (
	"dashboard-service/internal/filestore"
	"dashboard-service/internal/models"
	"fmt"
)

// DataService serves published dashboard documents to the public read API,
// falling back to the bundled seed tree before anything has been published.
type DataService struct {
	store *filestore.FileStore
}

func NewDataService(store *filestore.FileStore) *DataService {
	return &DataService{store: store}
}

// Read returns the document for a category/dataset pair: published data
// first, seed data second, not-found otherwise.
func (s *DataService) Read(category, datasetKey string) (any, error) {
	sourceID := category + "/" + datasetKey

	doc, err := s.store.ReadPublished(sourceID)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}

	seed, err := s.store.ReadSeed(sourceID)
	if err != nil {
		return nil, err
	}
	if seed != nil {
		return seed, nil
	}

	return nil, fmt.Errorf("data not found: %s: %w", sourceID, models.ErrNotFound)
}
