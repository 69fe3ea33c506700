package scoring_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinscore/internal/model"
	"clinscore/internal/scoring"
)

func weightedSchema() []model.Question {
	opts := []model.Option{
		{Value: "a", Score: 1},
		{Value: "b", Score: 2},
		{Value: "c", Score: 3},
	}
	return []model.Question{
		{ID: "q1", Type: model.QuestionTypeSingleChoice, Required: true, Options: opts, OrderNum: 1},
		{ID: "q2", Type: model.QuestionTypeSingleChoice, Required: true, Options: opts, OrderNum: 2},
		{ID: "q3", Type: model.QuestionTypeSingleChoice, Required: true, Options: opts, ScoringWeight: 2, OrderNum: 3},
	}
}

func sumConfig() *model.ScoringConfig {
	return &model.ScoringConfig{
		QuestionnaireID: "questionnaire-1",
		Method:          model.MethodSum,
		RiskLevels:      severityBands(),
	}
}

func TestOrchestrator_WeightedSumPipeline(t *testing.T) {
	o := scoring.NewOrchestrator()

	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "b"},
		{QuestionID: "q2", Value: "a"},
		{QuestionID: "q3", Value: "c"},
	}}

	result, err := o.Score(sub, weightedSchema(), sumConfig())
	require.NoError(t, err)

	// 2*1 + 1*1 + 3*2 = 9 -> "moderate" [5,9], not the highest band
	assert.Equal(t, 9, result.TotalScore)
	require.NotNil(t, result.RiskLevel)
	assert.Equal(t, "moderate", *result.RiskLevel)
	assert.False(t, result.FlaggedForReview)
	assert.Equal(t, model.MethodSum, result.Method)

	// Scored answers follow schema order
	require.Len(t, result.ScoredAnswers, 3)
	assert.Equal(t, "q1", result.ScoredAnswers[0].QuestionID)
	assert.Equal(t, "q3", result.ScoredAnswers[2].QuestionID)
}

func TestOrchestrator_Deterministic(t *testing.T) {
	o := scoring.NewOrchestrator()
	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "c"},
		{QuestionID: "q2", Value: "c"},
		{QuestionID: "q3", Value: "c"},
	}}

	first, err := o.Score(sub, weightedSchema(), sumConfig())
	require.NoError(t, err)
	second, err := o.Score(sub, weightedSchema(), sumConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOrchestrator_RejectedCarriesAllValidationErrors(t *testing.T) {
	o := scoring.NewOrchestrator()
	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "zzz"},
	}}

	_, err := o.Score(sub, weightedSchema(), sumConfig())
	require.Error(t, err)

	var failure *scoring.ScoringFailure
	require.ErrorAs(t, err, &failure)
	assert.True(t, failure.Rejected())
	assert.Equal(t, scoring.StageValidation, failure.Stage)
	// invalid option on q1 plus two missing required: the full list
	assert.Len(t, failure.ValidationErrors, 3)
}

func TestOrchestrator_CustomMethodResolvedFromRegistry(t *testing.T) {
	o := scoring.NewOrchestrator()
	o.RegisterCustomFunc("max_answer", scoring.MaxAnswer)

	cfg := sumConfig()
	cfg.Method = model.MethodCustom
	cfg.CustomFunc = "max_answer"

	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "a"},
		{QuestionID: "q2", Value: "c"},
		{QuestionID: "q3", Value: "b"},
	}}

	result, err := o.Score(sub, weightedSchema(), cfg)
	require.NoError(t, err)
	// max of raw scores 1, 3, 2
	assert.Equal(t, 3, result.TotalScore)
}

func TestOrchestrator_UnregisteredCustomFuncFails(t *testing.T) {
	o := scoring.NewOrchestrator()

	cfg := sumConfig()
	cfg.Method = model.MethodCustom
	cfg.CustomFunc = "does_not_exist"

	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "a"},
		{QuestionID: "q2", Value: "a"},
		{QuestionID: "q3", Value: "a"},
	}}

	_, err := o.Score(sub, weightedSchema(), cfg)
	require.Error(t, err)

	var failure *scoring.ScoringFailure
	require.ErrorAs(t, err, &failure)
	assert.False(t, failure.Rejected())
	assert.Equal(t, scoring.StageScoring, failure.Stage)
	require.NotNil(t, failure.ConfigError)
	assert.Equal(t, scoring.MissingScoringFunction, failure.ConfigError.Kind)
}

func TestOrchestrator_BrokenBandsFailClassification(t *testing.T) {
	o := scoring.NewOrchestrator()

	cfg := sumConfig()
	cfg.RiskLevels = []model.RiskBand{
		{Min: 0, Max: 10, RiskLevel: "low"},
		{Min: 5, Max: 20, RiskLevel: "high"},
	}

	sub := &model.Submission{Answers: []model.RawAnswer{
		{QuestionID: "q1", Value: "a"},
		{QuestionID: "q2", Value: "a"},
		{QuestionID: "q3", Value: "a"},
	}}

	_, err := o.Score(sub, weightedSchema(), cfg)
	require.Error(t, err)

	var failure *scoring.ScoringFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, scoring.StageClassification, failure.Stage)
	require.NotNil(t, failure.ConfigError)
	assert.Equal(t, scoring.InvalidBandConfiguration, failure.ConfigError.Kind)
}

func TestOrchestrator_NilArgumentsArePlainErrors(t *testing.T) {
	o := scoring.NewOrchestrator()
	sub := &model.Submission{}

	var failure *scoring.ScoringFailure

	_, err := o.Score(nil, weightedSchema(), sumConfig())
	require.Error(t, err)
	assert.False(t, errors.As(err, &failure))

	_, err = o.Score(sub, nil, sumConfig())
	require.Error(t, err)
	assert.False(t, errors.As(err, &failure))

	_, err = o.Score(sub, weightedSchema(), nil)
	require.Error(t, err)
	assert.False(t, errors.As(err, &failure))
}
