package model

import "time"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeDate           QuestionType = "date"
)

// Conventional numeric bounds, used when a rating/scale question does not
// declare its own range.
const (
	DefaultRatingMin = 1
	DefaultRatingMax = 5
	DefaultScaleMin  = 1
	DefaultScaleMax  = 10
)

// Option is a selectable choice with its score contribution
type Option struct {
	Value string  `json:"value" bson:"value"`
	Label string  `json:"label" bson:"label"`
	Score float64 `json:"score" bson:"score"`
}

// Question is one entry in a questionnaire's schema. Read-only to the
// scoring engine; the authoring side owns it.
type Question struct {
	ID            string       `json:"id" bson:"id"`
	Type          QuestionType `json:"type" bson:"type"`
	Prompt        string       `json:"prompt" bson:"prompt"`
	Required      bool         `json:"required" bson:"required"`
	Options       []Option     `json:"options,omitempty" bson:"options,omitempty"` // choice types only
	ScoringWeight int          `json:"scoringWeight" bson:"scoringWeight"`         // >= 0, default 1
	OrderNum      int          `json:"orderNum" bson:"orderNum"`
	MinValue      int          `json:"minValue,omitempty" bson:"minValue,omitempty"` // rating/scale
	MaxValue      int          `json:"maxValue,omitempty" bson:"maxValue,omitempty"` // rating/scale
	// For yes_no: score "no" as 1 and "yes" as 0 instead of the reverse
	Invert bool `json:"invert,omitempty" bson:"invert,omitempty"`
	// For text: fixed constant an answered question contributes. Nil means
	// free text never contributes numerically.
	FixedScore *float64 `json:"fixedScore,omitempty" bson:"fixedScore,omitempty"`
}

// Questionnaire is the catalog entity holding a question schema
type Questionnaire struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Title     string     `json:"title" bson:"title"`
	Questions []Question `json:"questions" bson:"questions"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// IsChoice reports whether the question carries declared options
func (q *Question) IsChoice() bool {
	return q.Type == QuestionTypeSingleChoice || q.Type == QuestionTypeMultipleChoice
}

// Scorable reports whether an answer to this question can contribute to the
// aggregate score. Text counts only when a fixed score is configured; dates
// never count.
func (q *Question) Scorable() bool {
	switch q.Type {
	case QuestionTypeText:
		return q.FixedScore != nil
	case QuestionTypeDate:
		return false
	default:
		return true
	}
}

// Bounds returns the declared numeric range for rating/scale questions,
// falling back to the conventional defaults when the schema declares none.
func (q *Question) Bounds() (min, max int) {
	if q.MinValue == 0 && q.MaxValue == 0 {
		switch q.Type {
		case QuestionTypeRating:
			return DefaultRatingMin, DefaultRatingMax
		case QuestionTypeScale:
			return DefaultScaleMin, DefaultScaleMax
		}
	}
	return q.MinValue, q.MaxValue
}

// FindOption looks up a declared option by value
func (q *Question) FindOption(value string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Weight returns the effective scoring weight. Zero-value questions default
// to 1; an explicit negative weight is clamped to 0.
func (q *Question) Weight() int {
	if q.ScoringWeight == 0 {
		return 1
	}
	if q.ScoringWeight < 0 {
		return 0
	}
	return q.ScoringWeight
}
