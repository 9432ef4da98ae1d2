package indentation

import m "onelevel.dev/pkg/onelevel/internal/model"

// ViolationMessage is reported for every file that breaks the rule.
const ViolationMessage = "More that one level of indentation."

// RuleName identifies the rule in reports and logs.
const RuleName = "one-level-of-indentation"

// Rule evaluates a parsed source file.
type Rule interface {
	Name() string
	Evaluate(file m.SourceFile) m.EvaluationResult
}

type oneLevelRule struct{}

// NewRule returns the one-level-of-indentation rule.
func NewRule() Rule {
	return oneLevelRule{}
}

func (oneLevelRule) Name() string {
	return RuleName
}

func (oneLevelRule) Evaluate(file m.SourceFile) m.EvaluationResult {
	return Evaluate(file)
}

// Evaluate runs the brace scan over the comment-filtered text first and only
// walks method bodies when it passes.
func Evaluate(file m.SourceFile) m.EvaluationResult {
	if ExceedsBraceDepth(FilterComments(file.RawText)) {
		return m.Violated(m.Violation{
			TypeName:  file.TypeName,
			Message:   ViolationMessage,
			Detection: m.DetectedByBraces,
		})
	}

	for _, method := range file.PrimaryType.Methods {
		if node, found := FirstNestingViolation(method.Body); found {
			return m.Violated(m.Violation{
				TypeName:  file.TypeName,
				Message:   ViolationMessage,
				Detection: m.DetectedByStructure,
				Method:    method.Name,
				Line:      node.Line,
			})
		}
	}

	return m.Conformant()
}
