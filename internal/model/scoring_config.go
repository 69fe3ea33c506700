package model

import (
	"fmt"
	"time"
)

// ScoringMethod defines how per-question scores are aggregated
type ScoringMethod string

const (
	MethodSum             ScoringMethod = "sum"
	MethodAverage         ScoringMethod = "average"
	MethodWeightedAverage ScoringMethod = "weighted_average"
	MethodCustom          ScoringMethod = "custom"
)

// RiskBand maps a closed score interval [Min, Max] to a risk-level code
type RiskBand struct {
	Min       int    `json:"min" bson:"min"`
	Max       int    `json:"max" bson:"max"`
	Label     string `json:"label" bson:"label"`
	RiskLevel string `json:"riskLevel" bson:"riskLevel"`
	// ForcesReview flags every response in this band for human review,
	// overriding the default highest-band-only policy.
	ForcesReview bool `json:"forcesReview,omitempty" bson:"forcesReview,omitempty"`
}

// Contains reports whether score falls inside the band. Both ends are
// closed: a score equal to Max belongs to this band, not the next one.
func (b RiskBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// ScoringConfig is the active scoring configuration for one questionnaire
type ScoringConfig struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string        `json:"questionnaireId" bson:"questionnaireId"`
	Method          ScoringMethod `json:"method" bson:"method"`
	// CustomFunc names the registered scoring function for method "custom"
	CustomFunc string `json:"customFunc,omitempty" bson:"customFunc,omitempty"`
	// MaxScore is a display/normalization upper bound, not enforced here
	MaxScore   *int       `json:"maxScore,omitempty" bson:"maxScore,omitempty"`
	RiskLevels []RiskBand `json:"riskLevels" bson:"riskLevels"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ValidateBands checks the band-table invariants: every band has min <= max,
// and bands are sorted ascending without overlap. Gaps are legal; scores
// falling into one classify as null.
func ValidateBands(bands []RiskBand) error {
	for i, b := range bands {
		if b.Min > b.Max {
			return fmt.Errorf("band %d (%s): min %d greater than max %d", i, b.RiskLevel, b.Min, b.Max)
		}
		if i > 0 {
			prev := bands[i-1]
			if b.Min <= prev.Max {
				return fmt.Errorf("band %d (%s): overlaps band %d (%s)", i, b.RiskLevel, i-1, prev.RiskLevel)
			}
		}
	}
	return nil
}

// Validate checks the config as a whole before it is accepted for storage
func (c *ScoringConfig) Validate() error {
	switch c.Method {
	case MethodSum, MethodAverage, MethodWeightedAverage:
	case MethodCustom:
		if c.CustomFunc == "" {
			return fmt.Errorf("method custom requires a customFunc name")
		}
	default:
		return fmt.Errorf("unknown scoring method %q", c.Method)
	}
	if len(c.RiskLevels) == 0 {
		return fmt.Errorf("at least one risk band is required")
	}
	return ValidateBands(c.RiskLevels)
}
