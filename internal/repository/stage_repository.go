package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StageRepository holds the full parsed payload between preview and publish,
// keyed by upload id. Staging the payload server-side means publish only
// needs the id: the client no longer has to round-trip the whole dataset,
// and a lost browser session no longer loses the preview.
type StageRepository interface {
	Stage(ctx context.Context, uploadID int64, document any) error
	Get(ctx context.Context, uploadID int64) (any, bool, error)
	Delete(ctx context.Context, uploadID int64) error
}

type stageRepository struct {
	client     *redis.Client
	expiration time.Duration
}

// NewStageRepository creates a stage repository. Staged payloads expire after
// one hour; a publish after expiry must supply the payload itself.
func NewStageRepository(client *redis.Client) StageRepository {
	return &stageRepository{
		client:     client,
		expiration: time.Hour,
	}
}

func (r *stageRepository) Stage(ctx context.Context, uploadID int64, document any) error {
	payload, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal staged payload: %w", err)
	}

	key := r.getStageKey(uploadID)
	if err := r.client.Set(ctx, key, payload, r.expiration).Err(); err != nil {
		return fmt.Errorf("failed to stage payload: %w", err)
	}

	return nil
}

func (r *stageRepository) Get(ctx context.Context, uploadID int64) (any, bool, error) {
	key := r.getStageKey(uploadID)
	payload, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get staged payload: %w", err)
	}

	var document any
	if err := json.Unmarshal([]byte(payload), &document); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal staged payload: %w", err)
	}

	return document, true, nil
}

func (r *stageRepository) Delete(ctx context.Context, uploadID int64) error {
	if err := r.client.Del(ctx, r.getStageKey(uploadID)).Err(); err != nil {
		return fmt.Errorf("failed to delete staged payload: %w", err)
	}
	return nil
}

func (r *stageRepository) getStageKey(uploadID int64) string {
	return fmt.Sprintf("upload_stage:%d", uploadID)
}
