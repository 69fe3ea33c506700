package scoring

import (
	"math"

	"clinscore/internal/model"
)

// CustomFunc is the extension point for questionnaire-specific aggregation.
// It receives the per-question scored answers (raw scores, weights applied
// by the function itself if it wants them) and returns the aggregate before
// terminal rounding.
type CustomFunc func(scored []model.ScoredAnswer) float64

// ScoreAnswers derives the per-question score for every validated answer.
// Scores here are raw: weights are recorded on the ScoredAnswer but applied
// during aggregation, so a custom function sees unweighted values.
//
// Validated answers are assumed to have passed Validate; option lookups
// cannot miss and kinds match their question types.
func ScoreAnswers(validated []model.Answer, schema []model.Question) []model.ScoredAnswer {
	byID := make(map[string]*model.Question, len(schema))
	for i := range schema {
		byID[schema[i].ID] = &schema[i]
	}

	scored := make([]model.ScoredAnswer, 0, len(validated))
	for _, a := range validated {
		q := byID[a.QuestionID]
		if q == nil {
			continue
		}
		scored = append(scored, model.ScoredAnswer{
			QuestionID: a.QuestionID,
			Value:      a.Value.Native(),
			Score:      questionScore(q, a.Value),
			Weight:     q.Weight(),
			Scorable:   q.Scorable(),
		})
	}
	return scored
}

func questionScore(q *model.Question, v model.AnswerValue) float64 {
	switch q.Type {
	case model.QuestionTypeSingleChoice:
		opt, _ := q.FindOption(v.Str)
		return opt.Score

	case model.QuestionTypeMultipleChoice:
		total := 0.0
		for _, item := range v.List {
			opt, _ := q.FindOption(item)
			total += opt.Score
		}
		return total

	case model.QuestionTypeRating, model.QuestionTypeScale:
		return v.Num

	case model.QuestionTypeYesNo:
		yes := v.Bool
		if q.Invert {
			yes = !yes
		}
		if yes {
			return 1
		}
		return 0

	case model.QuestionTypeText:
		if q.FixedScore != nil {
			return *q.FixedScore
		}
		return 0

	default: // date and anything future: never contributes
		return 0
	}
}

// Aggregate combines per-question scores into the total using the
// configured method. Intermediate arithmetic is floating point; the result
// is rounded exactly once, half away from zero, because risk bands are
// defined on integer boundaries and per-question rounding would compound.
func Aggregate(scored []model.ScoredAnswer, method model.ScoringMethod, custom CustomFunc) (int, *ScoringError) {
	switch method {
	case model.MethodSum:
		return roundHalfAway(weightedSum(scored)), nil

	case model.MethodAverage:
		n := scorableCount(scored)
		if n == 0 {
			return 0, nil
		}
		// Unanswered optional questions never reach this slice, so the
		// denominator is the count of answered, scorable questions.
		return roundHalfAway(weightedSum(scored) / float64(n)), nil

	case model.MethodWeightedAverage:
		totalWeight := 0
		for _, s := range scored {
			if s.Scorable {
				totalWeight += s.Weight
			}
		}
		if totalWeight == 0 {
			return 0, nil
		}
		return roundHalfAway(weightedSum(scored) / float64(totalWeight)), nil

	case model.MethodCustom:
		if custom == nil {
			return 0, &ScoringError{
				Kind:    MissingScoringFunction,
				Message: "method custom has no scoring function registered",
			}
		}
		return roundHalfAway(custom(scored)), nil

	default:
		return 0, &ScoringError{
			Kind:    MissingScoringFunction,
			Message: "unknown scoring method " + string(method),
		}
	}
}

func weightedSum(scored []model.ScoredAnswer) float64 {
	total := 0.0
	for _, s := range scored {
		if s.Scorable {
			total += s.Score * float64(s.Weight)
		}
	}
	return total
}

func scorableCount(scored []model.ScoredAnswer) int {
	n := 0
	for _, s := range scored {
		if s.Scorable {
			n++
		}
	}
	return n
}

// roundHalfAway rounds to the nearest integer, halves away from zero
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}

// MaxAnswer is a built-in custom aggregator: the total is the single worst
// (highest) raw answer score. Useful for screeners where any one critical
// answer should drive the classification.
func MaxAnswer(scored []model.ScoredAnswer) float64 {
	max := 0.0
	for _, s := range scored {
		if s.Scorable && s.Score > max {
			max = s.Score
		}
	}
	return max
}
