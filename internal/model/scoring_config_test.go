package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinscore/internal/model"
)

func TestValidateBands_SortedNonOverlapping(t *testing.T) {
	err := model.ValidateBands([]model.RiskBand{
		{Min: 0, Max: 4, RiskLevel: "low"},
		{Min: 5, Max: 9, RiskLevel: "moderate"},
		{Min: 10, Max: 27, RiskLevel: "high"},
	})
	assert.NoError(t, err)
}

func TestValidateBands_GapsAllowed(t *testing.T) {
	err := model.ValidateBands([]model.RiskBand{
		{Min: 0, Max: 4, RiskLevel: "low"},
		{Min: 10, Max: 20, RiskLevel: "high"},
	})
	assert.NoError(t, err)
}

func TestValidateBands_SharedBoundaryOverlaps(t *testing.T) {
	// [0,5] and [5,10] both contain 5: the closed-interval rule means a
	// shared boundary is an overlap, not an adjacency.
	err := model.ValidateBands([]model.RiskBand{
		{Min: 0, Max: 5, RiskLevel: "low"},
		{Min: 5, Max: 10, RiskLevel: "high"},
	})
	assert.Error(t, err)
}

func TestValidateBands_MinAboveMax(t *testing.T) {
	err := model.ValidateBands([]model.RiskBand{
		{Min: 10, Max: 5, RiskLevel: "broken"},
	})
	assert.Error(t, err)
}

func TestRiskBand_ContainsClosedInterval(t *testing.T) {
	b := model.RiskBand{Min: 5, Max: 9}

	assert.True(t, b.Contains(5))
	assert.True(t, b.Contains(9))
	assert.False(t, b.Contains(4))
	assert.False(t, b.Contains(10))
}

func TestScoringConfig_Validate(t *testing.T) {
	cfg := &model.ScoringConfig{
		Method:     model.MethodSum,
		RiskLevels: []model.RiskBand{{Min: 0, Max: 10, RiskLevel: "low"}},
	}
	require.NoError(t, cfg.Validate())

	cfg.Method = model.MethodCustom
	assert.Error(t, cfg.Validate(), "custom method without a function name")

	cfg.CustomFunc = "max_answer"
	assert.NoError(t, cfg.Validate())

	cfg.Method = "median"
	assert.Error(t, cfg.Validate(), "unknown method")

	cfg.Method = model.MethodSum
	cfg.RiskLevels = nil
	assert.Error(t, cfg.Validate(), "a config needs at least one band")
}

func TestQuestion_WeightDefaults(t *testing.T) {
	assert.Equal(t, 1, (&model.Question{}).Weight())
	assert.Equal(t, 3, (&model.Question{ScoringWeight: 3}).Weight())
	assert.Equal(t, 0, (&model.Question{ScoringWeight: -2}).Weight())
}

func TestQuestion_Scorable(t *testing.T) {
	fixed := 1.0

	assert.False(t, (&model.Question{Type: model.QuestionTypeText}).Scorable())
	assert.True(t, (&model.Question{Type: model.QuestionTypeText, FixedScore: &fixed}).Scorable())
	assert.False(t, (&model.Question{Type: model.QuestionTypeDate}).Scorable())
	assert.True(t, (&model.Question{Type: model.QuestionTypeRating}).Scorable())
}

func TestQuestion_BoundsDefaults(t *testing.T) {
	min, max := (&model.Question{Type: model.QuestionTypeRating}).Bounds()
	assert.Equal(t, 1, min)
	assert.Equal(t, 5, max)

	min, max = (&model.Question{Type: model.QuestionTypeScale}).Bounds()
	assert.Equal(t, 1, min)
	assert.Equal(t, 10, max)

	min, max = (&model.Question{Type: model.QuestionTypeScale, MinValue: 0, MaxValue: 100}).Bounds()
	assert.Equal(t, 0, min)
	assert.Equal(t, 100, max)
}
