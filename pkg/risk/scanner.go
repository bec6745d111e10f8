package risk

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/quotecheck/pkg/locale"
)

// contextRadius is the number of runes kept on each side of a match.
const contextRadius = 50

// ScanOptions tunes a Scanner.
type ScanOptions struct {
	// AutoFix enables auto-fix suggestions on findings.
	AutoFix bool
	// Exclusions suppress matches whose text contains any of these strings,
	// compared case-insensitively.
	Exclusions []string
}

// Scanner applies the patterns of one locale to text fields.
type Scanner struct {
	catalog    *Catalog
	locale     string
	patterns   []*Pattern
	autoFix    bool
	exclusions []string
}

// NewScanner builds a scanner for the locale code. Unknown codes use the
// default locale.
func NewScanner(c *Catalog, code string, opts ScanOptions) *Scanner {
	resolved := locale.Get(code).Code
	s := &Scanner{
		catalog:  c,
		locale:   resolved,
		patterns: c.PatternsFor(resolved),
		autoFix:  opts.AutoFix,
	}
	for _, e := range opts.Exclusions {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			s.exclusions = append(s.exclusions, e)
		}
	}
	return s
}

// Locale returns the resolved locale code of the scanner.
func (s *Scanner) Locale() string {
	return s.locale
}

// Scan returns every finding in text, attributed to field. Findings are
// ordered by pattern, then matcher, then position. Matches of different
// matchers may overlap; all of them are reported.
func (s *Scanner) Scan(text, field string) []DetectedRisk {
	var findings []DetectedRisk
	if strings.TrimSpace(text) == "" {
		return findings
	}

	var runes []rune
	for _, p := range s.patterns {
		for mi, re := range p.matchers {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				if loc[0] == loc[1] {
					continue
				}
				matched := text[loc[0]:loc[1]]
				if s.excluded(matched) {
					continue
				}
				if runes == nil {
					runes = []rune(text)
				}

				start := utf8.RuneCountInString(text[:loc[0]])
				end := start + utf8.RuneCountInString(matched)
				finding := DetectedRisk{
					ID:          fmt.Sprintf("%s-%s-%d-%d", p.ID, field, mi, start),
					RiskID:      p.ID,
					Category:    p.Category,
					Severity:    p.Severity,
					Text:        matched,
					Context:     contextWindow(runes, start, end),
					Position:    Position{Field: field, Start: start, End: end},
					Description: p.Description,
					Explanation: p.Explanation,
					Suggestion:  p.Suggestion,
				}
				if s.autoFix {
					finding.AutoFix = s.catalog.AutoFixFor(p, matched)
				}
				findings = append(findings, finding)
			}
		}
	}
	return findings
}

func (s *Scanner) excluded(matched string) bool {
	if len(s.exclusions) == 0 {
		return false
	}
	lower := strings.ToLower(matched)
	for _, e := range s.exclusions {
		if strings.Contains(lower, e) {
			return true
		}
	}
	return false
}

// contextWindow returns up to contextRadius runes on each side of
// runes[start:end], clipped to the bounds of the text.
func contextWindow(runes []rune, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ""
	}
	return string(runes[from:to])
}
