package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"clinscore/internal/model"
)

const dateLayout = "2006-01-02"

// Validate checks a set of raw answers against a question schema. It is a
// pure function: no side effects, no I/O.
//
// Validation is all-or-nothing at the question level but accumulates across
// questions: the returned error list is complete, never truncated at the
// first problem. On success the validated answers come back resolved to
// AnswerValue and ordered by the schema's OrderNum, which keeps everything
// downstream deterministic.
func Validate(answers []model.RawAnswer, schema []model.Question) ([]model.Answer, []ValidationError) {
	byID := make(map[string]*model.Question, len(schema))
	for i := range schema {
		byID[schema[i].ID] = &schema[i]
	}

	var errs []ValidationError

	// Last submission wins when a question id appears twice; earlier values
	// are superseded, not errors (form resubmission semantics).
	submitted := make(map[string]interface{}, len(answers))
	for _, a := range answers {
		if _, known := byID[a.QuestionID]; !known {
			errs = append(errs, ValidationError{
				Kind:       UnknownQuestion,
				QuestionID: a.QuestionID,
				Message:    "answer references an unknown question",
			})
			continue
		}
		submitted[a.QuestionID] = a.Value
	}

	validated := make([]model.Answer, 0, len(submitted))
	for _, q := range sortedByOrder(schema) {
		raw, present := submitted[q.ID]

		value := model.AnswerValue{Kind: model.KindEmpty}
		if present {
			var ok bool
			value, ok = model.ResolveValue(raw)
			if !ok {
				errs = append(errs, ValidationError{
					Kind:       TypeMismatch,
					QuestionID: q.ID,
					Message:    "answer value has an unsupported type",
				})
				continue
			}
		}

		if value.IsEmpty() {
			if q.Required {
				errs = append(errs, ValidationError{
					Kind:       MissingRequired,
					QuestionID: q.ID,
					Message:    "a required question was not answered",
				})
			}
			// Optional-and-absent is not an error and produces no answer.
			continue
		}

		resolved, verr := validateValue(&q, value)
		if verr != nil {
			errs = append(errs, *verr)
			continue
		}
		validated = append(validated, model.Answer{QuestionID: q.ID, Value: resolved})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return validated, nil
}

// validateValue checks one non-empty value against its question's type and
// normalizes it to the canonical kind for that type.
func validateValue(q *model.Question, v model.AnswerValue) (model.AnswerValue, *ValidationError) {
	switch q.Type {
	case model.QuestionTypeText:
		if v.Kind != model.KindString {
			return v, mismatch(q.ID, "expected a text value")
		}
		return v, nil

	case model.QuestionTypeSingleChoice:
		if v.Kind != model.KindString {
			return v, mismatch(q.ID, "expected a single option value")
		}
		if _, ok := q.FindOption(strings.TrimSpace(v.Str)); !ok {
			return v, &ValidationError{
				Kind:       InvalidOption,
				QuestionID: q.ID,
				Message:    fmt.Sprintf("value %q is not a declared option", v.Str),
			}
		}
		return model.StringValue(strings.TrimSpace(v.Str)), nil

	case model.QuestionTypeMultipleChoice:
		var items []string
		switch v.Kind {
		case model.KindList:
			items = v.List
		case model.KindString:
			// Single selection submitted without array wrapping
			items = []string{v.Str}
		default:
			return v, mismatch(q.ID, "expected a list of option values")
		}
		seen := make(map[string]bool, len(items))
		deduped := make([]string, 0, len(items))
		for _, item := range items {
			item = strings.TrimSpace(item)
			if _, ok := q.FindOption(item); !ok {
				return v, &ValidationError{
					Kind:       InvalidOption,
					QuestionID: q.ID,
					Message:    fmt.Sprintf("value %q is not a declared option", item),
				}
			}
			if seen[item] {
				continue // duplicates are de-duplicated, not rejected
			}
			seen[item] = true
			deduped = append(deduped, item)
		}
		return model.ListValue(deduped), nil

	case model.QuestionTypeRating, model.QuestionTypeScale:
		num, ok := asNumber(v)
		if !ok {
			return v, mismatch(q.ID, "expected a numeric value")
		}
		min, max := q.Bounds()
		if num < float64(min) || num > float64(max) {
			return v, &ValidationError{
				Kind:       OutOfRange,
				QuestionID: q.ID,
				Message:    fmt.Sprintf("value %v outside range %d-%d", num, min, max),
			}
		}
		return model.NumberValue(num), nil

	case model.QuestionTypeYesNo:
		b, ok := asBool(v)
		if !ok {
			return v, mismatch(q.ID, "expected a yes/no value")
		}
		return model.BoolValue(b), nil

	case model.QuestionTypeDate:
		if v.Kind != model.KindString {
			return v, mismatch(q.ID, "expected a date string")
		}
		if _, err := time.Parse(dateLayout, strings.TrimSpace(v.Str)); err != nil {
			return v, mismatch(q.ID, "expected a date in YYYY-MM-DD form")
		}
		return model.StringValue(strings.TrimSpace(v.Str)), nil

	default:
		return v, mismatch(q.ID, fmt.Sprintf("unsupported question type %q", q.Type))
	}
}

// asNumber accepts native numbers and numeric strings, for compatibility
// with form-encoded submissions.
func asNumber(v model.AnswerValue) (float64, bool) {
	switch v.Kind {
	case model.KindNumber:
		return v.Num, true
	case model.KindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// asBool accepts native booleans and "true"/"false" string forms
func asBool(v model.AnswerValue) (bool, bool) {
	switch v.Kind {
	case model.KindBool:
		return v.Bool, true
	case model.KindString:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func mismatch(questionID, msg string) *ValidationError {
	return &ValidationError{Kind: TypeMismatch, QuestionID: questionID, Message: msg}
}

// sortedByOrder returns the schema ordered by OrderNum without mutating the
// caller's slice. Ties keep their original relative order.
func sortedByOrder(schema []model.Question) []model.Question {
	out := make([]model.Question, len(schema))
	copy(out, schema)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].OrderNum < out[b].OrderNum
	})
	return out
}
