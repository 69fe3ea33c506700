package model

import "time"

// ScoredAnswer is an answer plus its derived per-question score. Never
// mutated after creation.
type ScoredAnswer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      interface{} `json:"value" bson:"value"`
	Score      float64     `json:"score" bson:"score"`
	Weight     int         `json:"weight" bson:"weight"`
	// Scorable marks answers whose question contributes to aggregation;
	// it drives the average-method denominator.
	Scorable bool `json:"scorable" bson:"scorable"`
}

// ScoringResult is the finalized outcome for one response submission.
// Created once per invocation and immutable thereafter; recalculation
// produces a brand-new result rather than patching the old one.
type ScoringResult struct {
	TotalScore int `json:"totalScore" bson:"totalScore"`
	// RiskLevel is the matched band's code, nil when the score fell outside
	// every configured band.
	RiskLevel        *string        `json:"riskLevel" bson:"riskLevel"`
	RiskLabel        string         `json:"riskLabel,omitempty" bson:"riskLabel,omitempty"`
	FlaggedForReview bool           `json:"flaggedForReview" bson:"flaggedForReview"`
	ScoredAnswers    []ScoredAnswer `json:"scoredAnswers" bson:"scoredAnswers"`
	Method           ScoringMethod  `json:"method" bson:"method"`
}

// Response is the stored response record: the raw answers (kept so the
// result can be recomputed after a config edit) plus the scoring outcome.
type Response struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string      `json:"questionnaireId" bson:"questionnaireId"`
	RespondentID    string      `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	Answers         []RawAnswer `json:"answers" bson:"answers"`

	Score            int            `json:"score" bson:"score"`
	RiskLevel        *string        `json:"riskLevel" bson:"riskLevel"`
	FlaggedForReview bool           `json:"flaggedForReview" bson:"flaggedForReview"`
	ScoredAnswers    []ScoredAnswer `json:"scoredAnswers" bson:"scoredAnswers"`

	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
	ScoredAt    time.Time `json:"scoredAt" bson:"scoredAt"`
}

// ApplyResult copies a scoring result onto the response record. Used both
// on first submission and when recalculation overwrites the stored result
// wholesale.
func (r *Response) ApplyResult(result *ScoringResult, scoredAt time.Time) {
	r.Score = result.TotalScore
	r.RiskLevel = result.RiskLevel
	r.FlaggedForReview = result.FlaggedForReview
	r.ScoredAnswers = result.ScoredAnswers
	r.ScoredAt = scoredAt
}
