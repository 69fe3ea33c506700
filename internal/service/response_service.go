package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clinscore/internal/cache"
	"clinscore/internal/model"
	"clinscore/internal/repository"
	"clinscore/internal/scoring"
)

var ErrResponseNotFound = errors.New("response not found")

// Broadcaster pushes scoring events to connected dashboards
type Broadcaster interface {
	BroadcastToDashboard(questionnaireID string, msgType string, payload interface{})
}

// ScoredEvent is the dashboard payload emitted when a response is scored
type ScoredEvent struct {
	ResponseID       string  `json:"responseId"`
	QuestionnaireID  string  `json:"questionnaireId"`
	TotalScore       int     `json:"totalScore"`
	RiskLevel        *string `json:"riskLevel"`
	FlaggedForReview bool    `json:"flaggedForReview"`
}

// RecalcSummary reports the outcome of a bulk recalculation
type RecalcSummary struct {
	QuestionnaireID string   `json:"questionnaireId"`
	Total           int      `json:"total"`
	Recalculated    int      `json:"recalculated"`
	Failed          int      `json:"failed"`
	FailedIDs       []string `json:"failedIds,omitempty"`
}

// ResponseService runs submissions through the scoring engine and hands the
// finalized result to persistence. It owns no scoring logic itself.
type ResponseService struct {
	responseRepo repository.ResponseRepo
	catalogSvc   *CatalogService
	orchestrator *scoring.Orchestrator
	statsCache   cache.StatsCache
	broadcaster  Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(
	responseRepo repository.ResponseRepo,
	catalogSvc *CatalogService,
	orchestrator *scoring.Orchestrator,
	statsCache cache.StatsCache,
) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		catalogSvc:   catalogSvc,
		orchestrator: orchestrator,
		statsCache:   statsCache,
	}
}

// SetBroadcaster sets the broadcaster for dashboard events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit scores a raw submission and persists the response.
//
// A *scoring.ScoringFailure error means the submission was rejected
// (validation) or the questionnaire's configuration is broken (scoring or
// classification); nothing is persisted in either case.
func (s *ResponseService) Submit(ctx context.Context, questionnaireID string, sub *model.Submission) (*model.Response, error) {
	snap, err := s.catalogSvc.Snapshot(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	result, err := s.orchestrator.Score(sub, snap.Questionnaire.Questions, snap.Config)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := &model.Response{
		ID:              uuid.New().String(),
		QuestionnaireID: questionnaireID,
		RespondentID:    sub.RespondentID,
		Answers:         sub.Answers,
		SubmittedAt:     now,
	}
	resp.ApplyResult(result, now)

	if err := s.responseRepo.Create(ctx, resp); err != nil {
		return nil, fmt.Errorf("store response: %w", err)
	}

	s.statsCache.Invalidate(ctx, questionnaireID)
	s.notifyScored(resp)

	return resp, nil
}

// GetByID fetches one stored response
func (s *ResponseService) GetByID(ctx context.Context, id string) (*model.Response, error) {
	resp, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get response: %w", err)
	}
	if resp == nil {
		return nil, ErrResponseNotFound
	}
	return resp, nil
}

// ListByQuestionnaire fetches all stored responses for a questionnaire
func (s *ResponseService) ListByQuestionnaire(ctx context.Context, questionnaireID string) ([]*model.Response, error) {
	return s.responseRepo.GetByQuestionnaireID(ctx, questionnaireID)
}

// RecalculateAll re-scores every stored response for a questionnaire
// against the current catalog and overwrites each stored result wholesale.
// Each response is an independent invocation; a failure on one never stops
// the rest. Invalid stored answers (possible after a schema edit) are
// counted and left untouched.
func (s *ResponseService) RecalculateAll(ctx context.Context, questionnaireID string) (*RecalcSummary, error) {
	snap, err := s.catalogSvc.Snapshot(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.GetByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	summary := &RecalcSummary{QuestionnaireID: questionnaireID, Total: len(responses)}
	for _, resp := range responses {
		sub := &model.Submission{RespondentID: resp.RespondentID, Answers: resp.Answers}

		result, err := s.orchestrator.Score(sub, snap.Questionnaire.Questions, snap.Config)
		if err != nil {
			var failure *scoring.ScoringFailure
			if errors.As(err, &failure) && !failure.Rejected() {
				// Configuration fault: every remaining response would fail
				// the same way, so stop and surface it to the admin.
				return nil, err
			}
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, resp.ID)
			log.Printf("recalculate: response %s no longer validates: %v", resp.ID, err)
			continue
		}

		resp.ApplyResult(result, time.Now())
		if err := s.responseRepo.ReplaceResult(ctx, resp); err != nil {
			return summary, fmt.Errorf("replace result for %s: %w", resp.ID, err)
		}
		summary.Recalculated++
	}

	s.statsCache.Invalidate(ctx, questionnaireID)
	log.Printf("recalculate: questionnaire %s: %d/%d responses rescored",
		questionnaireID, summary.Recalculated, summary.Total)

	return summary, nil
}

func (s *ResponseService) notifyScored(resp *model.Response) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToDashboard(resp.QuestionnaireID, "response_scored", &ScoredEvent{
		ResponseID:       resp.ID,
		QuestionnaireID:  resp.QuestionnaireID,
		TotalScore:       resp.Score,
		RiskLevel:        resp.RiskLevel,
		FlaggedForReview: resp.FlaggedForReview,
	})
}
