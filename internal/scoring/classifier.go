package scoring

import (
	"fmt"

	"clinscore/internal/model"
)

// Classification is the outcome of mapping a total score onto a band table
type Classification struct {
	// RiskLevel is nil when the score fell outside every band. Clamping to
	// an extreme band would misrepresent clinical risk, so out-of-range
	// scores stay unclassified.
	RiskLevel *string
	Label     string
	Flagged   bool
}

// Classify finds the unique band containing totalScore. Bands are closed
// intervals on both ends: a score equal to a band's max belongs to that
// band, not the next one.
//
// The band invariants are owned by ScoringConfig but re-checked here; a
// broken table fails fast instead of silently picking the first match.
func Classify(totalScore int, bands []model.RiskBand) (Classification, *ScoringError) {
	if len(bands) == 0 {
		return Classification{}, &ScoringError{
			Kind:    InvalidBandConfiguration,
			Message: "no risk bands configured",
		}
	}
	if err := model.ValidateBands(bands); err != nil {
		return Classification{}, &ScoringError{
			Kind:    InvalidBandConfiguration,
			Message: err.Error(),
		}
	}

	for i, band := range bands {
		if !band.Contains(totalScore) {
			continue
		}
		level := band.RiskLevel
		return Classification{
			RiskLevel: &level,
			Label:     band.Label,
			// Default policy: the single highest-severity band always
			// warrants review. Any band can opt in via forcesReview.
			Flagged: i == len(bands)-1 || band.ForcesReview,
		}, nil
	}

	// Below the lowest min or above the highest max, or inside an explicit
	// gap: unclassified, and itself worth a human look.
	return Classification{RiskLevel: nil, Flagged: true}, nil
}

// Describe renders a classification for logs and admin surfaces
func (c Classification) Describe() string {
	if c.RiskLevel == nil {
		return "unclassified"
	}
	return fmt.Sprintf("%s (%s)", *c.RiskLevel, c.Label)
}
