package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"clinscore/internal/model"
)

// QuestionnaireStats are the dashboard aggregates derived from stored
// scoring results. Reporting reads scores; it never computes them.
type QuestionnaireStats struct {
	QuestionnaireID string              `json:"questionnaireId"`
	TotalResponses  int                 `json:"totalResponses"`
	FlaggedCount    int                 `json:"flaggedCount"`
	Unclassified    int                 `json:"unclassified"`
	AverageScore    float64             `json:"averageScore"`
	ByRiskLevel     map[string]int      `json:"byRiskLevel"`
	Method          model.ScoringMethod `json:"method,omitempty"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

// StatsCache caches dashboard aggregates with a short TTL
type StatsCache interface {
	Set(ctx context.Context, questionnaireID string, stats *QuestionnaireStats) error
	Get(ctx context.Context, questionnaireID string) (*QuestionnaireStats, error)
	Invalidate(ctx context.Context, questionnaireID string) error
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) Set(ctx context.Context, questionnaireID string, stats *QuestionnaireStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "stats:"+questionnaireID, data, 30*time.Second).Err()
}

func (c *statsCache) Get(ctx context.Context, questionnaireID string) (*QuestionnaireStats, error) {
	data, err := c.client.Get(ctx, "stats:"+questionnaireID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats QuestionnaireStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *statsCache) Invalidate(ctx context.Context, questionnaireID string) error {
	return c.client.Del(ctx, "stats:"+questionnaireID).Err()
}
