package risk

import (
	"fmt"

	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
)

// maxScore is the saturation point of the weighted severity sum.
const maxScore = 100

// DefaultFields are the record fields scanned when none are configured.
var DefaultFields = []string{
	quote.FieldNotes,
	quote.FieldDescription,
	quote.FieldClientAddress,
	quote.FieldTitle,
}

// Options configures an Analyzer.
type Options struct {
	// Fields are dotted paths of the text fields to scan. Line item
	// descriptions are always scanned.
	Fields []string
	// AutoFix enables pattern auto-fix suggestions.
	AutoFix bool
	// Exclusions suppress matches containing any of these strings.
	Exclusions []string
}

// DefaultOptions returns the default analyzer options.
func DefaultOptions() Options {
	return Options{
		Fields:  append([]string(nil), DefaultFields...),
		AutoFix: true,
	}
}

// Analyzer runs the complete risk analysis of a quote.
type Analyzer struct {
	catalog  *Catalog
	options  Options
	scanners map[string]*Scanner
}

// NewAnalyzer builds an analyzer with one scanner per registered locale.
func NewAnalyzer(c *Catalog, opts Options) *Analyzer {
	if c == nil {
		c = DefaultCatalog()
	}
	if len(opts.Fields) == 0 {
		opts.Fields = append([]string(nil), DefaultFields...)
	}

	a := &Analyzer{
		catalog:  c,
		options:  opts,
		scanners: make(map[string]*Scanner),
	}
	scanOpts := ScanOptions{AutoFix: opts.AutoFix, Exclusions: opts.Exclusions}
	for _, code := range locale.Codes() {
		a.scanners[code] = NewScanner(c, code, scanOpts)
	}
	return a
}

// Catalog returns the analyzer's catalog.
func (a *Analyzer) Catalog() *Catalog {
	return a.catalog
}

// Options returns the analyzer's options.
func (a *Analyzer) Options() Options {
	return a.options
}

// Analyze scans the configured fields and line items of r, checks the
// mandatory mentions of the locale, filters by sensitivity and scores the
// result. Unknown locales fall back to the default pack; unknown
// sensitivities behave like normal. Malformed fields are skipped.
func (a *Analyzer) Analyze(r quote.Record, code string, sensitivity Sensitivity) *AnalysisResult {
	pack := locale.Get(code)
	if parsed, err := ParseSensitivity(string(sensitivity)); err == nil {
		sensitivity = parsed
	} else {
		sensitivity = SensitivityNormal
	}
	scanner := a.scanners[pack.Code]

	var findings []DetectedRisk
	for _, field := range a.options.Fields {
		if text := r.Text(field); text != "" {
			findings = append(findings, scanner.Scan(text, field)...)
		}
	}
	for i, item := range r.Items() {
		if item == nil {
			continue
		}
		if text := item.Text(quote.FieldDescription); text != "" {
			findings = append(findings, scanner.Scan(text, fmt.Sprintf("items[%d].description", i))...)
		}
	}
	findings = append(findings, a.catalog.MissingMentions(r, pack.Code)...)

	risks := FilterBySensitivity(findings, sensitivity)
	result := &AnalysisResult{
		HasRisks:        len(risks) > 0,
		TotalRisks:      len(risks),
		Risks:           risks,
		Score:           Score(risks),
		Recommendations: a.catalog.Recommend(risks),
		Locale:          pack.Code,
		Sensitivity:     sensitivity,
	}
	for _, risk := range risks {
		switch risk.Severity {
		case SeverityCritical:
			result.Critical++
		case SeverityHigh:
			result.High++
		case SeverityMedium:
			result.Medium++
		case SeverityLow:
			result.Low++
		}
		if risk.AutoFix != nil {
			result.AutoFixAvailable = true
		}
	}
	return result
}

// FilterBySensitivity drops the findings whose severity the sensitivity
// does not retain. The result is never nil.
func FilterBySensitivity(risks []DetectedRisk, sensitivity Sensitivity) []DetectedRisk {
	out := make([]DetectedRisk, 0, len(risks))
	for _, risk := range risks {
		if sensitivity.Allows(risk.Severity) {
			out = append(out, risk)
		}
	}
	return out
}

// Score is the severity-weighted sum of risks, saturating at 100.
func Score(risks []DetectedRisk) int {
	score := 0
	for _, risk := range risks {
		score += risk.Severity.Weight()
		if score >= maxScore {
			return maxScore
		}
	}
	return score
}

// Recommend returns one advisory sentence per category present in
// risks, in category declaration order, followed by the auto-fix sentence
// when any risk carries an auto-fix. The result is never nil.
func (c *Catalog) Recommend(risks []DetectedRisk) []string {
	present := make(map[Category]bool, len(risks))
	hasFix := false
	for _, risk := range risks {
		present[risk.Category] = true
		if risk.AutoFix != nil {
			hasFix = true
		}
	}

	out := []string{}
	for _, category := range AllCategories {
		if !present[category] {
			continue
		}
		if sentence, ok := c.Recommendations[category]; ok {
			out = append(out, sentence)
		}
	}
	if hasFix && c.AutoFixRecommendation != "" {
		out = append(out, c.AutoFixRecommendation)
	}
	return out
}
