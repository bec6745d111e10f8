package locale

import "github.com/coolbeans/quotecheck/pkg/quote"

// Violation is one failed compliance requirement.
type Violation struct {
	RuleID      string       `json:"ruleId"`
	Description string       `json:"description"`
	Severity    RuleSeverity `json:"severity"`
	Field       string       `json:"field,omitempty"`
}

// CheckCompliance evaluates the pack's required fields and rules against r.
// Required fields come first, then rules in declaration order. A compliant
// record yields an empty, non-nil slice.
func (p *Pack) CheckCompliance(r quote.Record) []Violation {
	violations := []Violation{}
	for _, field := range p.Compliance.RequiredFields {
		if r.IsEmpty(field) {
			violations = append(violations, Violation{
				RuleID:      "required:" + field,
				Description: "required field " + field + " is missing",
				Severity:    SeverityError,
				Field:       field,
			})
		}
	}
	for i := range p.Compliance.Rules {
		rule := &p.Compliance.Rules[i]
		if !rule.Check.Eval(r) {
			violations = append(violations, Violation{
				RuleID:      rule.ID,
				Description: rule.Description,
				Severity:    rule.Severity,
			})
		}
	}
	return violations
}

// HasErrors reports whether any violation has error severity.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
