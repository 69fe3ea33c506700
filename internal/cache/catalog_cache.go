package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"clinscore/internal/model"
)

// CatalogSnapshot is the read-only bundle the scoring pipeline consumes:
// the question schema plus the active scoring config, captured together so
// one submission never sees a half-updated catalog.
type CatalogSnapshot struct {
	Questionnaire *model.Questionnaire `json:"questionnaire"`
	Config        *model.ScoringConfig `json:"config"`
}

// CatalogCache caches catalog snapshots per questionnaire
type CatalogCache interface {
	Set(ctx context.Context, questionnaireID string, snap *CatalogSnapshot) error
	Get(ctx context.Context, questionnaireID string) (*CatalogSnapshot, error)
	Invalidate(ctx context.Context, questionnaireID string) error
}

type catalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a catalog cache
func NewCatalogCache(client *redis.Client) CatalogCache {
	return &catalogCache{client: client}
}

func (c *catalogCache) Set(ctx context.Context, questionnaireID string, snap *CatalogSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "catalog:"+questionnaireID, data, 10*time.Minute).Err()
}

func (c *catalogCache) Get(ctx context.Context, questionnaireID string) (*CatalogSnapshot, error) {
	data, err := c.client.Get(ctx, "catalog:"+questionnaireID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap CatalogSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *catalogCache) Invalidate(ctx context.Context, questionnaireID string) error {
	return c.client.Del(ctx, "catalog:"+questionnaireID).Err()
}
