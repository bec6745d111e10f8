package risk

import (
	"strings"
	"testing"

	"github.com/coolbeans/quotecheck/pkg/quote"
)

func TestAutoFixFor(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		pattern string
		matched string
		want    *AutoFix
	}{
		{"absolute_guarantee", "garantie totale", &AutoFix{Type: FixReplace, Value: "prévu sous réserve des conditions habituelles"}},
		{"absolute_guarantee", "résultat garanti", nil},
		{"fixed_price_guarantee", "prix garanti", &AutoFix{Type: FixAppend, Value: "prix garanti (hors variation exceptionnelle du prix des matières premières supérieure à 10 %)"}},
		{"unlimited_liability", "responsabilité illimitée", &AutoFix{Type: FixReplace, Value: "responsabilité limitée au montant du présent devis"}},
		{"vague_terms", "etc.", &AutoFix{Type: FixRemove, Value: ""}},
		{"open_scope", "travaux divers", nil},
	}
	for _, tt := range tests {
		p, ok := c.Pattern(tt.pattern)
		if !ok {
			t.Fatalf("Pattern(%q) not found", tt.pattern)
		}
		got := c.AutoFixFor(p, tt.matched)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("AutoFixFor(%s, %q) = %+v, want nil", tt.pattern, tt.matched, got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("AutoFixFor(%s, %q) = %+v, want %+v", tt.pattern, tt.matched, got, tt.want)
		}
	}

	if c.AutoFixFor(nil, "x") != nil {
		t.Error("AutoFixFor(nil) should return nil")
	}
}

func TestApplyFix(t *testing.T) {
	s := NewScanner(DefaultCatalog(), "fr-BE", ScanOptions{AutoFix: true})
	text := "Travaux réalisés avec une responsabilité totale de l'entreprise."
	findings := s.Scan(text, "notes")
	if len(findings) != 1 {
		t.Fatalf("Scan() = %d findings, want 1", len(findings))
	}

	got := ApplyFix(text, findings[0])
	want := "Travaux réalisés avec une responsabilité limitée au montant du présent devis de l'entreprise."
	if got != want {
		t.Errorf("ApplyFix() = %q, want %q", got, want)
	}

	stale := findings[0]
	stale.Position.Start++
	if ApplyFix(text, stale) != text {
		t.Error("ApplyFix() with stale position should leave text unchanged")
	}
}

func TestAppendMention(t *testing.T) {
	if got := AppendMention("", "Mention."); got != "Mention." {
		t.Errorf("AppendMention(empty) = %q", got)
	}
	if got := AppendMention("Notes.", "Mention."); got != "Notes.\n\nMention." {
		t.Errorf("AppendMention() = %q", got)
	}
}

func TestApplyFixes(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog(), DefaultOptions())
	r := quote.Record{
		"notes": "Prix fixe garanti, aucune annulation possible.",
		"items": []any{
			map[string]any{"description": "Pose avec une responsabilité totale"},
		},
	}
	result := a.Analyze(r, "fr-BE", SensitivityStrict)

	got := ApplyFixes(r, result.Risks)
	notes := got["notes"]
	for _, want := range []string{
		"aucune annulation possible (sous réserve du droit de rétractation légal du consommateur)",
		"(hors variation exceptionnelle du prix des matières premières supérieure à 10 %)",
	} {
		if !strings.Contains(notes, want) {
			t.Errorf("notes = %q, want it to contain %q", notes, want)
		}
	}
	if item := got["items[0].description"]; item != "Pose avec une responsabilité limitée au montant du présent devis" {
		t.Errorf("items[0].description = %q", item)
	}
	if _, ok := got["title"]; ok {
		t.Error("untouched fields should be omitted")
	}
}

func TestApplyFixesAppendsMentions(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog(), DefaultOptions())
	r := quote.Record{"notes": "Chantier à Lyon."}
	result := a.Analyze(r, "fr-FR", SensitivityNormal)

	got := ApplyFixes(r, result.Risks)["notes"]
	if !strings.HasPrefix(got, "Chantier à Lyon.\n\n") {
		t.Errorf("notes = %q, want original text kept first", got)
	}
	if !strings.Contains(got, "art. L441-10 du Code de commerce") {
		t.Errorf("notes = %q, want late payment mention", got)
	}
}

func TestApplyFixesNothingToDo(t *testing.T) {
	if got := ApplyFixes(quote.Record{"notes": "RAS"}, nil); len(got) != 0 {
		t.Errorf("ApplyFixes() = %v, want empty", got)
	}
}
