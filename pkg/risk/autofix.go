package risk

import (
	"sort"

	"github.com/coolbeans/quotecheck/pkg/quote"
)

// AutoFixFor proposes a correction for text matched by p. It returns nil
// when the catalog has no rule for the pattern or when the rule would leave
// the text unchanged.
func (c *Catalog) AutoFixFor(p *Pattern, matched string) *AutoFix {
	if p == nil {
		return nil
	}
	rule, ok := c.AutoFixes[p.ID]
	if !ok || rule == nil {
		return nil
	}

	switch rule.Type {
	case FixReplace:
		if rule.re == nil {
			return nil
		}
		fixed := rule.re.ReplaceAllString(matched, rule.Replacement)
		if fixed == matched {
			return nil
		}
		return &AutoFix{Type: FixReplace, Value: fixed}
	case FixAppend:
		return &AutoFix{Type: FixAppend, Value: matched + rule.Suffix}
	case FixRemove:
		return &AutoFix{Type: FixRemove, Value: ""}
	}
	return nil
}

// ApplyFix rewrites text by applying the auto-fix of a finding located in
// it. Offsets are rune offsets; findings without auto-fix, with an
// add_mention fix or with out-of-range positions return text unchanged.
func ApplyFix(text string, risk DetectedRisk) string {
	if risk.AutoFix == nil || risk.AutoFix.Type == FixAddMention {
		return text
	}
	runes := []rune(text)
	start, end := risk.Position.Start, risk.Position.End
	if start < 0 || end > len(runes) || start >= end {
		return text
	}
	if string(runes[start:end]) != risk.Text {
		return text
	}
	return string(runes[:start]) + risk.AutoFix.Value + string(runes[end:])
}

// AppendMention adds a mention to the notes on a new paragraph.
func AppendMention(notes, mention string) string {
	if notes == "" {
		return mention
	}
	return notes + "\n\n" + mention
}

// ApplyFixes applies every auto-fix of risks to r and returns the rewritten
// text of each touched field, keyed by field path. Fixes within a field are
// applied from the end so earlier offsets stay valid; a fix overlapping one
// already applied is skipped. Mentions are appended to the notes in order.
func ApplyFixes(r quote.Record, risks []DetectedRisk) map[string]string {
	byField := make(map[string][]DetectedRisk)
	var mentions []string
	for _, risk := range risks {
		switch {
		case risk.AutoFix == nil:
		case risk.AutoFix.Type == FixAddMention:
			mentions = append(mentions, risk.AutoFix.Value)
		default:
			byField[risk.Position.Field] = append(byField[risk.Position.Field], risk)
		}
	}

	out := make(map[string]string)
	for field, fieldRisks := range byField {
		sort.SliceStable(fieldRisks, func(i, j int) bool {
			return fieldRisks[i].Position.Start > fieldRisks[j].Position.Start
		})
		text := r.Text(field)
		limit := -1
		for _, risk := range fieldRisks {
			if limit >= 0 && risk.Position.End > limit {
				continue
			}
			fixed := ApplyFix(text, risk)
			if fixed != text {
				text = fixed
				limit = risk.Position.Start
			}
		}
		if text != r.Text(field) {
			out[field] = text
		}
	}

	if len(mentions) > 0 {
		notes, ok := out[quote.FieldNotes]
		if !ok {
			notes = r.Text(quote.FieldNotes)
		}
		for _, m := range mentions {
			notes = AppendMention(notes, m)
		}
		out[quote.FieldNotes] = notes
	}
	return out
}
