package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clinscore/internal/cache"
	"clinscore/internal/model"
	"clinscore/internal/repository"
)

var (
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrNoScoringConfig       = errors.New("no scoring config for questionnaire")
)

// CatalogService owns questionnaire authoring and the catalog snapshots the
// scoring pipeline reads. The engine itself never touches storage; it gets
// an immutable snapshot from here.
type CatalogService struct {
	questionnaireRepo repository.QuestionnaireRepo
	configRepo        repository.ScoringConfigRepo
	catalogCache      cache.CatalogCache
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	questionnaireRepo repository.QuestionnaireRepo,
	configRepo repository.ScoringConfigRepo,
	catalogCache cache.CatalogCache,
) *CatalogService {
	return &CatalogService{
		questionnaireRepo: questionnaireRepo,
		configRepo:        configRepo,
		catalogCache:      catalogCache,
	}
}

// CreateQuestionnaire stores a new questionnaire, assigning ids and order
// numbers where the author left them out.
func (s *CatalogService) CreateQuestionnaire(ctx context.Context, q *model.Questionnaire) (string, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = uuid.New().String()
		}
		if q.Questions[i].OrderNum == 0 {
			q.Questions[i].OrderNum = i + 1
		}
	}

	if err := s.questionnaireRepo.Create(ctx, q); err != nil {
		return "", fmt.Errorf("create questionnaire: %w", err)
	}
	return q.ID, nil
}

// GetQuestionnaire fetches one questionnaire by id
func (s *CatalogService) GetQuestionnaire(ctx context.Context, id string) (*model.Questionnaire, error) {
	q, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get questionnaire: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionnaireNotFound
	}
	return q, nil
}

// SetScoringConfig validates and stores the scoring config for a
// questionnaire, replacing any previous one, and drops the cached snapshot
// so the next submission sees the new bands.
func (s *CatalogService) SetScoringConfig(ctx context.Context, cfg *model.ScoringConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid scoring config: %w", err)
	}

	q, err := s.questionnaireRepo.GetByID(ctx, cfg.QuestionnaireID)
	if err != nil {
		return fmt.Errorf("get questionnaire: %w", err)
	}
	if q == nil {
		return ErrQuestionnaireNotFound
	}

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("store scoring config: %w", err)
	}

	// Best effort: a stale snapshot only lives until its TTL anyway.
	s.catalogCache.Invalidate(ctx, cfg.QuestionnaireID)
	return nil
}

// Snapshot returns the questionnaire plus its active scoring config,
// cache-aside through Redis. The returned snapshot is a read-only view;
// callers must not mutate it.
func (s *CatalogService) Snapshot(ctx context.Context, questionnaireID string) (*cache.CatalogSnapshot, error) {
	if snap, err := s.catalogCache.Get(ctx, questionnaireID); err == nil && snap != nil {
		return snap, nil
	}

	q, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("get questionnaire: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionnaireNotFound
	}

	cfg, err := s.configRepo.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("get scoring config: %w", err)
	}
	if cfg == nil {
		return nil, ErrNoScoringConfig
	}

	snap := &cache.CatalogSnapshot{Questionnaire: q, Config: cfg}
	s.catalogCache.Set(ctx, questionnaireID, snap)
	return snap, nil
}
