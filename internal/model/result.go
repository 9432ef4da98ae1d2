package model

// Detection names the analysis that found excess nesting.
type Detection string

const (
	// DetectedByBraces means the textual brace scan tripped.
	DetectedByBraces Detection = "braces"
	// DetectedByStructure means the syntax tree walk tripped.
	DetectedByStructure Detection = "structure"
)

// Violation describes a failed evaluation. Method and Line are only set when
// the syntax tree walk found the problem.
type Violation struct {
	TypeName  string
	Message   string
	Detection Detection
	Method    string
	Line      int
}

// EvaluationResult is either conformant (nil Violation) or a violation.
type EvaluationResult struct {
	Violation *Violation
}

// Conformant returns a passing result.
func Conformant() EvaluationResult {
	return EvaluationResult{}
}

// Violated returns a failing result carrying v.
func Violated(v Violation) EvaluationResult {
	return EvaluationResult{Violation: &v}
}

// IsConformant reports whether the evaluation passed.
func (r EvaluationResult) IsConformant() bool {
	return r.Violation == nil
}
