package scoring

import (
	"fmt"
	"strings"
)

// ValidationKind identifies why an answer was rejected. Validation errors
// are the submitter's fault and always recoverable by resubmission.
type ValidationKind string

const (
	UnknownQuestion ValidationKind = "unknown_question"
	MissingRequired ValidationKind = "missing_required"
	InvalidOption   ValidationKind = "invalid_option"
	OutOfRange      ValidationKind = "out_of_range"
	TypeMismatch    ValidationKind = "type_mismatch"
)

// ValidationError describes one invalid answer
type ValidationError struct {
	Kind       ValidationKind `json:"kind"`
	QuestionID string         `json:"questionId"`
	Message    string         `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Message)
}

// ConfigErrorKind identifies a scoring-configuration fault. These are the
// configuration author's fault, never the submitter's, and block scoring
// rather than produce a misleading number.
type ConfigErrorKind string

const (
	MissingScoringFunction   ConfigErrorKind = "missing_scoring_function"
	InvalidBandConfiguration ConfigErrorKind = "invalid_band_configuration"
)

// ScoringError describes an invalid scoring configuration
type ScoringError struct {
	Kind    ConfigErrorKind `json:"kind"`
	Message string          `json:"message"`
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring configuration invalid: %s", e.Message)
}

// Stage names the pipeline stage a failure occurred in
type Stage string

const (
	StageValidation     Stage = "validation"
	StageScoring        Stage = "scoring"
	StageClassification Stage = "classification"
)

// ScoringFailure is the structured failure the orchestrator returns instead
// of a result. Validation failures carry the complete error list; scoring
// and classification failures carry the configuration error.
type ScoringFailure struct {
	Stage            Stage             `json:"stage"`
	ValidationErrors []ValidationError `json:"validationErrors,omitempty"`
	ConfigError      *ScoringError     `json:"configError,omitempty"`
}

func (f *ScoringFailure) Error() string {
	if f.ConfigError != nil {
		return fmt.Sprintf("scoring failed at %s: %s", f.Stage, f.ConfigError.Message)
	}
	msgs := make([]string, 0, len(f.ValidationErrors))
	for _, ve := range f.ValidationErrors {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Sprintf("scoring failed at %s: %s", f.Stage, strings.Join(msgs, "; "))
}

// Rejected reports whether the failure came from submitted answers rather
// than from configuration.
func (f *ScoringFailure) Rejected() bool {
	return f.Stage == StageValidation
}
