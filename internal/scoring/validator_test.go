package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinscore/internal/model"
	"clinscore/internal/scoring"
)

func screenerSchema() []model.Question {
	return []model.Question{
		{
			ID:       "q_mood",
			Type:     model.QuestionTypeSingleChoice,
			Required: true,
			OrderNum: 1,
			Options: []model.Option{
				{Value: "never", Score: 0},
				{Value: "sometimes", Score: 1},
				{Value: "often", Score: 2},
			},
		},
		{
			ID:       "q_sleep",
			Type:     model.QuestionTypeRating,
			Required: true,
			OrderNum: 2,
		},
		{
			ID:       "q_symptoms",
			Type:     model.QuestionTypeMultipleChoice,
			OrderNum: 3,
			Options: []model.Option{
				{Value: "fatigue", Score: 1},
				{Value: "headache", Score: 1},
				{Value: "nausea", Score: 2},
			},
		},
		{
			ID:       "q_smoker",
			Type:     model.QuestionTypeYesNo,
			OrderNum: 4,
		},
		{
			ID:       "q_notes",
			Type:     model.QuestionTypeText,
			OrderNum: 5,
		},
		{
			ID:       "q_onset",
			Type:     model.QuestionTypeDate,
			OrderNum: 6,
		},
	}
}

func TestValidate_AllValid(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "often"},
		{QuestionID: "q_sleep", Value: float64(3)},
		{QuestionID: "q_symptoms", Value: []interface{}{"fatigue", "nausea"}},
		{QuestionID: "q_smoker", Value: false},
		{QuestionID: "q_notes", Value: "worse at night"},
		{QuestionID: "q_onset", Value: "2026-08-01"},
	}, screenerSchema())

	require.Empty(t, errs)
	require.Len(t, validated, 6)
	// Output follows schema order regardless of submission order
	assert.Equal(t, "q_mood", validated[0].QuestionID)
	assert.Equal(t, "q_onset", validated[5].QuestionID)
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	// Three independent faults: unknown id, bad option, out-of-range rating.
	// All three are reported, not just the first.
	_, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_ghost", Value: "x"},
		{QuestionID: "q_mood", Value: "always"},
		{QuestionID: "q_sleep", Value: float64(9)},
	}, screenerSchema())

	require.Len(t, errs, 3)
	kinds := make(map[scoring.ValidationKind]bool)
	for _, e := range errs {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[scoring.UnknownQuestion])
	assert.True(t, kinds[scoring.InvalidOption])
	assert.True(t, kinds[scoring.OutOfRange])
}

func TestValidate_MissingRequired(t *testing.T) {
	// q_mood answered, q_sleep (required) absent: exactly one error.
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
	}, screenerSchema())

	assert.Nil(t, validated)
	require.Len(t, errs, 1)
	assert.Equal(t, scoring.MissingRequired, errs[0].Kind)
	assert.Equal(t, "q_sleep", errs[0].QuestionID)
}

func TestValidate_EmptyValuesCountAsMissing(t *testing.T) {
	// nil, blank string and empty list all mean "not answered"
	_, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: nil},
		{QuestionID: "q_sleep", Value: "   "},
	}, screenerSchema())

	require.Len(t, errs, 2)
	assert.Equal(t, scoring.MissingRequired, errs[0].Kind)
	assert.Equal(t, scoring.MissingRequired, errs[1].Kind)
}

func TestValidate_OptionalAbsentIsNotAnError(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(2)},
	}, screenerSchema())

	require.Empty(t, errs)
	// Only the two answered questions come back
	assert.Len(t, validated, 2)
}

func TestValidate_RatingBoundsInclusive(t *testing.T) {
	// Default rating range is 1-5; both ends are valid.
	for _, v := range []float64{1, 5} {
		_, errs := scoring.Validate([]model.RawAnswer{
			{QuestionID: "q_mood", Value: "never"},
			{QuestionID: "q_sleep", Value: v},
		}, screenerSchema())
		assert.Empty(t, errs, "rating %v should be in range", v)
	}

	_, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(6)},
	}, screenerSchema())
	require.Len(t, errs, 1)
	assert.Equal(t, scoring.OutOfRange, errs[0].Kind)
}

func TestValidate_NumericStringAccepted(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: "4"},
	}, screenerSchema())

	require.Empty(t, errs)
	require.Len(t, validated, 2)
	assert.Equal(t, model.KindNumber, validated[1].Value.Kind)
	assert.Equal(t, 4.0, validated[1].Value.Num)
}

func TestValidate_BoolStringAccepted(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(2)},
		{QuestionID: "q_smoker", Value: "true"},
	}, screenerSchema())

	require.Empty(t, errs)
	require.Len(t, validated, 3)
	assert.Equal(t, model.KindBool, validated[2].Value.Kind)
	assert.True(t, validated[2].Value.Bool)
}

func TestValidate_MultipleChoiceDeduplicates(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(2)},
		{QuestionID: "q_symptoms", Value: []interface{}{"fatigue", "fatigue", "nausea"}},
	}, screenerSchema())

	require.Empty(t, errs)
	require.Len(t, validated, 3)
	assert.Equal(t, []string{"fatigue", "nausea"}, validated[2].Value.List)
}

func TestValidate_MultipleChoiceSingleString(t *testing.T) {
	// A bare string selection is wrapped into a one-item list
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(2)},
		{QuestionID: "q_symptoms", Value: "headache"},
	}, screenerSchema())

	require.Empty(t, errs)
	assert.Equal(t, []string{"headache"}, validated[2].Value.List)
}

func TestValidate_DuplicateAnswerLastWins(t *testing.T) {
	validated, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(1)},
		{QuestionID: "q_sleep", Value: float64(5)},
	}, screenerSchema())

	require.Empty(t, errs)
	require.Len(t, validated, 2)
	assert.Equal(t, 5.0, validated[1].Value.Num)
}

func TestValidate_BadDate(t *testing.T) {
	_, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: "never"},
		{QuestionID: "q_sleep", Value: float64(2)},
		{QuestionID: "q_onset", Value: "01/08/2026"},
	}, screenerSchema())

	require.Len(t, errs, 1)
	assert.Equal(t, scoring.TypeMismatch, errs[0].Kind)
	assert.Equal(t, "q_onset", errs[0].QuestionID)
}

func TestValidate_TypeMismatch(t *testing.T) {
	// A number where the schema expects an option value
	_, errs := scoring.Validate([]model.RawAnswer{
		{QuestionID: "q_mood", Value: float64(2)},
		{QuestionID: "q_sleep", Value: float64(2)},
	}, screenerSchema())

	require.Len(t, errs, 1)
	assert.Equal(t, scoring.TypeMismatch, errs[0].Kind)
	assert.Equal(t, "q_mood", errs[0].QuestionID)
}
