package model

import "strings"

// ValueKind tags the resolved type of an answer value
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindList
)

// AnswerValue is the tagged union an answer value resolves to at the
// validation boundary. Raw submissions carry string | number | boolean |
// string[] depending on question type; they are resolved once, here, and
// never re-interpreted downstream.
type AnswerValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// StringValue builds a string-kinded value; blank strings resolve to empty
func StringValue(s string) AnswerValue {
	if strings.TrimSpace(s) == "" {
		return AnswerValue{Kind: KindEmpty}
	}
	return AnswerValue{Kind: KindString, Str: s}
}

// NumberValue builds a number-kinded value
func NumberValue(n float64) AnswerValue {
	return AnswerValue{Kind: KindNumber, Num: n}
}

// BoolValue builds a bool-kinded value
func BoolValue(b bool) AnswerValue {
	return AnswerValue{Kind: KindBool, Bool: b}
}

// ListValue builds a list-kinded value; empty lists resolve to empty
func ListValue(items []string) AnswerValue {
	if len(items) == 0 {
		return AnswerValue{Kind: KindEmpty}
	}
	return AnswerValue{Kind: KindList, List: items}
}

// ResolveValue normalizes a decoded JSON value (string, float64, bool,
// []interface{}) into an AnswerValue. Unsupported shapes come back as
// (zero, false) so the validator can report a type mismatch.
func ResolveValue(raw interface{}) (AnswerValue, bool) {
	switch v := raw.(type) {
	case nil:
		return AnswerValue{Kind: KindEmpty}, true
	case string:
		return StringValue(v), true
	case float64:
		return NumberValue(v), true
	case int:
		return NumberValue(float64(v)), true
	case bool:
		return BoolValue(v), true
	case []string:
		return ListValue(v), true
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return AnswerValue{}, false
			}
			items = append(items, s)
		}
		return ListValue(items), true
	default:
		return AnswerValue{}, false
	}
}

// IsEmpty reports whether the value counts as "no answer": null, blank
// string, or an empty array.
func (v AnswerValue) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// Native returns the canonical Go representation for storage
func (v AnswerValue) Native() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindList:
		return v.List
	default:
		return nil
	}
}

// RawAnswer is an answer exactly as submitted, before validation
type RawAnswer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      interface{} `json:"value" bson:"value"`
}

// Answer is a validated answer: question id plus its resolved value
type Answer struct {
	QuestionID string
	Value      AnswerValue
}

// Submission is a raw response submission handed to the orchestrator
type Submission struct {
	RespondentID string      `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	Answers      []RawAnswer `json:"answers" bson:"answers"`
}
