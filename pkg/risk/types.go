// Package risk implements the legal risk analysis of quotes: a catalog of
// risky phrasings and mandatory legal mentions, a text scanner, a mention
// checker, auto-fix suggestions and the aggregation that scores a quote.
//
// Everything in this package is safe for concurrent use once a Catalog has
// been loaded; analysis holds no state between calls.
package risk

import (
	"fmt"
	"strings"
)

// Category classifies what kind of legal exposure a finding represents.
type Category string

const (
	CategoryBindingCommitment    Category = "binding_commitment"
	CategoryPriceGuarantee       Category = "price_guarantee"
	CategoryTimelineGuarantee    Category = "timeline_guarantee"
	CategoryWarranty             Category = "warranty"
	CategoryPenaltyClause        Category = "penalty_clause"
	CategoryLiability            Category = "liability"
	CategoryCancellation         Category = "cancellation"
	CategoryIntellectualProperty Category = "intellectual_property"
	CategoryConfidentiality      Category = "confidentiality"
	CategoryPaymentTerms         Category = "payment_terms"
	CategoryScopeCreep           Category = "scope_creep"
	CategoryAmbiguity            Category = "ambiguity"
	CategoryMissingInfo          Category = "missing_info"
)

// AllCategories lists the categories in declaration order. Recommendations
// follow this order.
var AllCategories = []Category{
	CategoryBindingCommitment,
	CategoryPriceGuarantee,
	CategoryTimelineGuarantee,
	CategoryWarranty,
	CategoryPenaltyClause,
	CategoryLiability,
	CategoryCancellation,
	CategoryIntellectualProperty,
	CategoryConfidentiality,
	CategoryPaymentTerms,
	CategoryScopeCreep,
	CategoryAmbiguity,
	CategoryMissingInfo,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Severity is the fixed gravity of a pattern.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Weight returns the score contribution of one finding of this severity.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 25
	case SeverityHigh:
		return 15
	case SeverityMedium:
		return 8
	case SeverityLow:
		return 3
	}
	return 0
}

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Sensitivity selects which severities survive filtering.
type Sensitivity string

const (
	SensitivityStrict     Sensitivity = "strict"
	SensitivityNormal     Sensitivity = "normal"
	SensitivityPermissive Sensitivity = "permissive"
)

// ParseSensitivity parses a sensitivity name. The empty string is normal.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch Sensitivity(strings.ToLower(strings.TrimSpace(s))) {
	case "", SensitivityNormal:
		return SensitivityNormal, nil
	case SensitivityStrict:
		return SensitivityStrict, nil
	case SensitivityPermissive:
		return SensitivityPermissive, nil
	}
	return "", fmt.Errorf("unknown sensitivity %q (valid: strict, normal, permissive)", s)
}

// Allows reports whether findings of severity are kept at this sensitivity.
// Unknown sensitivities behave like normal.
func (s Sensitivity) Allows(severity Severity) bool {
	switch s {
	case SensitivityStrict:
		return severity.IsValid()
	case SensitivityPermissive:
		return severity == SeverityCritical
	}
	switch severity {
	case SeverityCritical, SeverityHigh, SeverityMedium:
		return true
	}
	return false
}

// FixType is the kind of correction an AutoFix proposes.
type FixType string

const (
	FixReplace    FixType = "replace"
	FixAppend     FixType = "append"
	FixRemove     FixType = "remove"
	FixAddMention FixType = "add_mention"
)

// AutoFix is a proposed correction. For replace and append, Value is the
// text that should stand in place of the match; for remove it is empty; for
// add_mention it is the full mention to insert into the notes.
type AutoFix struct {
	Type  FixType `json:"type"`
	Value string  `json:"value"`
}

// Position locates a finding. Offsets are rune offsets into the field
// value; missing-mention findings point at the start of the notes.
type Position struct {
	Field string `json:"field"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// DetectedRisk is one finding of an analysis run.
type DetectedRisk struct {
	ID          string   `json:"id"`
	RiskID      string   `json:"riskId"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Text        string   `json:"text"`
	Context     string   `json:"context"`
	Position    Position `json:"position"`
	Description string   `json:"description"`
	Explanation string   `json:"explanation"`
	Suggestion  string   `json:"suggestion,omitempty"`
	AutoFix     *AutoFix `json:"autoFix,omitempty"`
}

// AnalysisResult is the outcome of analyzing one quote.
type AnalysisResult struct {
	HasRisks         bool           `json:"hasRisks"`
	TotalRisks       int            `json:"totalRisks"`
	Critical         int            `json:"critical"`
	High             int            `json:"high"`
	Medium           int            `json:"medium"`
	Low              int            `json:"low"`
	Risks            []DetectedRisk `json:"risks"`
	Score            int            `json:"score"`
	Recommendations  []string       `json:"recommendations"`
	AutoFixAvailable bool           `json:"autoFixAvailable"`
	Locale           string         `json:"locale"`
	Sensitivity      Sensitivity    `json:"sensitivity"`
}

// Categories returns the distinct categories of the result's findings in
// declaration order.
func (r *AnalysisResult) Categories() []Category {
	present := make(map[Category]bool, len(r.Risks))
	for _, risk := range r.Risks {
		present[risk.Category] = true
	}
	out := []Category{}
	for _, c := range AllCategories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}
