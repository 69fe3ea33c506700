package service

import (
	"context"
	"fmt"
	"time"

	"clinscore/internal/cache"
	"clinscore/internal/repository"
)

// StatsService derives dashboard aggregates from stored scoring results.
// It reads scores; it never computes them — recalculation goes through the
// ResponseService.
type StatsService struct {
	responseRepo repository.ResponseRepo
	statsCache   cache.StatsCache
}

// NewStatsService creates a new stats service
func NewStatsService(responseRepo repository.ResponseRepo, statsCache cache.StatsCache) *StatsService {
	return &StatsService{
		responseRepo: responseRepo,
		statsCache:   statsCache,
	}
}

// ForQuestionnaire returns the aggregate view for one questionnaire,
// cache-aside through Redis with a short TTL.
func (s *StatsService) ForQuestionnaire(ctx context.Context, questionnaireID string) (*cache.QuestionnaireStats, error) {
	if stats, err := s.statsCache.Get(ctx, questionnaireID); err == nil && stats != nil {
		return stats, nil
	}

	responses, err := s.responseRepo.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	stats := &cache.QuestionnaireStats{
		QuestionnaireID: questionnaireID,
		TotalResponses:  len(responses),
		ByRiskLevel:     make(map[string]int),
		GeneratedAt:     time.Now(),
	}

	scoreSum := 0
	for _, resp := range responses {
		scoreSum += resp.Score
		if resp.FlaggedForReview {
			stats.FlaggedCount++
		}
		if resp.RiskLevel == nil {
			stats.Unclassified++
		} else {
			stats.ByRiskLevel[*resp.RiskLevel]++
		}
	}
	if len(responses) > 0 {
		stats.AverageScore = float64(scoreSum) / float64(len(responses))
	}

	s.statsCache.Set(ctx, questionnaireID, stats)
	return stats, nil
}
