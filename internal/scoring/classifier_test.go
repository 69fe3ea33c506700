package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinscore/internal/model"
	"clinscore/internal/scoring"
)

func severityBands() []model.RiskBand {
	return []model.RiskBand{
		{Min: 0, Max: 4, Label: "Low", RiskLevel: "low"},
		{Min: 5, Max: 9, Label: "Moderate", RiskLevel: "moderate"},
		{Min: 10, Max: 27, Label: "High", RiskLevel: "high"},
	}
}

func TestClassify_BandBoundariesInclusive(t *testing.T) {
	// 4 belongs to [0,4], 5 to [5,9]: closed on both ends
	c, err := scoring.Classify(4, severityBands())
	require.Nil(t, err)
	require.NotNil(t, c.RiskLevel)
	assert.Equal(t, "low", *c.RiskLevel)

	c, err = scoring.Classify(5, severityBands())
	require.Nil(t, err)
	require.NotNil(t, c.RiskLevel)
	assert.Equal(t, "moderate", *c.RiskLevel)
}

func TestClassify_HighestBandFlagged(t *testing.T) {
	c, err := scoring.Classify(27, severityBands())
	require.Nil(t, err)
	require.NotNil(t, c.RiskLevel)
	assert.Equal(t, "high", *c.RiskLevel)
	assert.True(t, c.Flagged)
}

func TestClassify_MiddleBandNotFlagged(t *testing.T) {
	c, err := scoring.Classify(7, severityBands())
	require.Nil(t, err)
	assert.False(t, c.Flagged)
}

func TestClassify_ForcesReviewFlagsMiddleBand(t *testing.T) {
	bands := severityBands()
	bands[1].ForcesReview = true

	c, err := scoring.Classify(7, bands)
	require.Nil(t, err)
	assert.True(t, c.Flagged)
}

func TestClassify_OutOfRangeUnclassified(t *testing.T) {
	// -1 falls below every band: null risk level, flagged for review
	c, err := scoring.Classify(-1, severityBands())
	require.Nil(t, err)
	assert.Nil(t, c.RiskLevel)
	assert.True(t, c.Flagged)
	assert.Equal(t, "unclassified", c.Describe())

	c, err = scoring.Classify(100, severityBands())
	require.Nil(t, err)
	assert.Nil(t, c.RiskLevel)
	assert.True(t, c.Flagged)
}

func TestClassify_GapUnclassified(t *testing.T) {
	bands := []model.RiskBand{
		{Min: 0, Max: 4, RiskLevel: "low"},
		{Min: 10, Max: 20, RiskLevel: "high"},
	}

	// 7 falls in the explicit 5-9 gap
	c, err := scoring.Classify(7, bands)
	require.Nil(t, err)
	assert.Nil(t, c.RiskLevel)
	assert.True(t, c.Flagged)
}

func TestClassify_NoBands(t *testing.T) {
	_, err := scoring.Classify(5, nil)
	require.NotNil(t, err)
	assert.Equal(t, scoring.InvalidBandConfiguration, err.Kind)
}

func TestClassify_OverlappingBands(t *testing.T) {
	bands := []model.RiskBand{
		{Min: 0, Max: 5, RiskLevel: "low"},
		{Min: 5, Max: 10, RiskLevel: "high"},
	}

	_, err := scoring.Classify(3, bands)
	require.NotNil(t, err)
	assert.Equal(t, scoring.InvalidBandConfiguration, err.Kind)
}

func TestClassify_InvertedBand(t *testing.T) {
	bands := []model.RiskBand{{Min: 10, Max: 5, RiskLevel: "broken"}}

	_, err := scoring.Classify(7, bands)
	require.NotNil(t, err)
	assert.Equal(t, scoring.InvalidBandConfiguration, err.Kind)
}
