package risk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
)

const (
	maxMentionKeywords = 5
	minKeywordRunes    = 5
)

// MentionKeywords extracts the evidence keywords of a mention text:
// punctuation is removed, the text is split on whitespace and the first
// five words longer than four characters are kept, lowercased.
func MentionKeywords(text string) []string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, text)

	var keywords []string
	for _, word := range strings.Fields(stripped) {
		if utf8.RuneCountInString(word) < minKeywordRunes {
			continue
		}
		keywords = append(keywords, strings.ToLower(word))
		if len(keywords) == maxMentionKeywords {
			break
		}
	}
	return keywords
}

// mentionPresent reports whether notes carry keyword evidence of m.
func mentionPresent(m *Mention, notes string) bool {
	lower := strings.ToLower(notes)
	for _, kw := range MentionKeywords(m.Text) {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// fallbackMissingMention is used when the catalog has no wording for the
// locale nor for the default locale.
var fallbackMissingMention = MissingMentionText{
	Description: "Mention obligatoire manquante : {label}",
	Explanation: "Cette mention est exigée pour ce devis et aucun indice de sa présence n'a été trouvé dans les notes.",
	Suggestion:  "Ajoutez la mention dans les notes du devis.",
}

func (c *Catalog) missingMentionText(code string) MissingMentionText {
	if text, ok := c.MissingMention[code]; ok && text != nil {
		return *text
	}
	if text, ok := c.MissingMention[locale.DefaultCode]; ok && text != nil {
		return *text
	}
	return fallbackMissingMention
}

// MissingMentions returns a finding for every mandatory mention of the
// locale that applies to r but has no keyword evidence in r's notes. The
// check is lenient: a single keyword is enough to count as present.
func (c *Catalog) MissingMentions(r quote.Record, code string) []DetectedRisk {
	resolved := locale.Get(code).Code
	notes := r.Text(quote.FieldNotes)
	wording := c.missingMentionText(resolved)

	var findings []DetectedRisk
	for _, m := range c.MandatoryMentionsFor(resolved, r) {
		if mentionPresent(m, notes) {
			continue
		}
		label := m.Label
		if label == "" {
			label = m.ID
		}
		findings = append(findings, DetectedRisk{
			ID:          "missing-" + m.ID,
			RiskID:      m.ID,
			Category:    CategoryMissingInfo,
			Severity:    SeverityHigh,
			Position:    Position{Field: quote.FieldNotes},
			Description: strings.ReplaceAll(wording.Description, "{label}", label),
			Explanation: wording.Explanation,
			Suggestion:  wording.Suggestion,
			AutoFix:     &AutoFix{Type: FixAddMention, Value: m.Text},
		})
	}
	return findings
}
