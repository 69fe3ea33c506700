package scoring

import (
	"fmt"

	"clinscore/internal/model"
)

// Orchestrator runs the validate -> score -> classify pipeline for one
// response submission. It holds no per-response state and may be shared
// across goroutines: the custom-function registry is populated at startup
// and read-only afterwards.
type Orchestrator struct {
	custom map[string]CustomFunc
}

// NewOrchestrator creates an orchestrator with an empty custom-function
// registry.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{custom: make(map[string]CustomFunc)}
}

// RegisterCustomFunc registers a named aggregation function that scoring
// configs with method "custom" can reference. Call before serving traffic.
func (o *Orchestrator) RegisterCustomFunc(name string, fn CustomFunc) {
	o.custom[name] = fn
}

// Score turns a raw submission into a finalized ScoringResult.
//
// Expected failures come back as *ScoringFailure: a Rejected failure with
// the complete validation error list, or a configuration failure from the
// scoring/classification stages. Nil schema or config is a caller contract
// violation and returns a plain error.
func (o *Orchestrator) Score(sub *model.Submission, schema []model.Question, cfg *model.ScoringConfig) (*model.ScoringResult, error) {
	if sub == nil {
		return nil, fmt.Errorf("scoring: nil submission")
	}
	if schema == nil {
		return nil, fmt.Errorf("scoring: nil question schema")
	}
	if cfg == nil {
		return nil, fmt.Errorf("scoring: nil scoring config")
	}

	// Validating. Any error, required-question or otherwise, rejects the
	// submission outright; no partial score is ever computed.
	validated, verrs := Validate(sub.Answers, schema)
	if len(verrs) > 0 {
		return nil, &ScoringFailure{Stage: StageValidation, ValidationErrors: verrs}
	}

	// Scoring.
	scored := ScoreAnswers(validated, schema)
	var custom CustomFunc
	if cfg.Method == model.MethodCustom {
		custom = o.custom[cfg.CustomFunc]
	}
	total, serr := Aggregate(scored, cfg.Method, custom)
	if serr != nil {
		return nil, &ScoringFailure{Stage: StageScoring, ConfigError: serr}
	}

	// Classifying.
	class, cerr := Classify(total, cfg.RiskLevels)
	if cerr != nil {
		return nil, &ScoringFailure{Stage: StageClassification, ConfigError: cerr}
	}

	// No timestamp here: for fixed inputs the result must be identical
	// across invocations. The persistence layer stamps ScoredAt.
	return &model.ScoringResult{
		TotalScore:       total,
		RiskLevel:        class.RiskLevel,
		RiskLabel:        class.Label,
		FlaggedForReview: class.Flagged,
		ScoredAnswers:    scored,
		Method:           cfg.Method,
	}, nil
}
