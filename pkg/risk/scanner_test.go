package risk

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func newTestScanner(code string, autoFix bool, exclusions ...string) *Scanner {
	return NewScanner(DefaultCatalog(), code, ScanOptions{AutoFix: autoFix, Exclusions: exclusions})
}

func TestScanAbsoluteGuarantee(t *testing.T) {
	s := newTestScanner("fr-BE", true)
	findings := s.Scan("Résultat : garanti à 100% sur la durée du chantier.", "notes")

	var found bool
	for _, f := range findings {
		if f.Severity == SeverityCritical && f.Category == CategoryBindingCommitment {
			found = true
			if f.Text != "garanti à 100%" {
				t.Errorf("Text = %q, want %q", f.Text, "garanti à 100%")
			}
			if f.AutoFix == nil || f.AutoFix.Type != FixReplace {
				t.Fatalf("AutoFix = %+v, want replace", f.AutoFix)
			}
			if f.AutoFix.Value != "prévu sous réserve des conditions habituelles" {
				t.Errorf("AutoFix.Value = %q", f.AutoFix.Value)
			}
		}
	}
	if !found {
		t.Errorf("Scan() = %+v, want a critical binding_commitment finding", findings)
	}
}

func TestScanDeterministic(t *testing.T) {
	s := newTestScanner("fr-FR", true)
	text := "Prix ferme garanti, délai garanti, travaux divers etc. et responsabilité totale."

	first := s.Scan(text, "description")
	second := s.Scan(text, "description")
	if len(first) == 0 {
		t.Fatal("Scan() returned no findings")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Scan() is not deterministic")
	}

	seen := make(map[string]bool)
	for _, f := range first {
		if seen[f.ID] {
			t.Errorf("duplicate finding id %q", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestScanPositionsAreRuneOffsets(t *testing.T) {
	s := newTestScanner("fr-BE", false)
	text := "Un résultat garanti."
	findings := s.Scan(text, "title")
	if len(findings) != 1 {
		t.Fatalf("Scan() = %d findings, want 1", len(findings))
	}
	f := findings[0]
	if f.Position.Start != 3 || f.Position.End != 19 {
		t.Errorf("Position = %+v, want start 3 end 19", f.Position)
	}
	if f.Position.Field != "title" {
		t.Errorf("Position.Field = %q, want title", f.Position.Field)
	}
	if f.ID != "absolute_guarantee-title-1-3" {
		t.Errorf("ID = %q", f.ID)
	}
	if string([]rune(text)[f.Position.Start:f.Position.End]) != f.Text {
		t.Errorf("position does not select %q", f.Text)
	}
}

func TestScanContextClipping(t *testing.T) {
	s := newTestScanner("fr-BE", false)
	long := strings.Repeat("é", 80)

	tests := []struct {
		name string
		text string
	}{
		{"at start", "etc" + long},
		{"at end", long + "etc"},
		{"alone", "etc"},
		{"both sides", long + " etc " + long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := s.Scan(tt.text, "notes")
			if len(findings) != 1 {
				t.Fatalf("Scan() = %d findings, want 1", len(findings))
			}
			ctx := findings[0].Context
			if !strings.Contains(ctx, "etc") {
				t.Errorf("Context %q should contain the match", ctx)
			}
			if n := utf8.RuneCountInString(ctx); n > 3+2*contextRadius {
				t.Errorf("Context has %d runes, want at most %d", n, 3+2*contextRadius)
			}
			if !strings.Contains(tt.text, ctx) {
				t.Errorf("Context %q is not a substring of the text", ctx)
			}
		})
	}
}

func TestScanExclusions(t *testing.T) {
	text := "Prix fixe garanti et aucune annulation."

	all := newTestScanner("fr-BE", false).Scan(text, "notes")
	if len(all) != 2 {
		t.Fatalf("Scan() = %d findings, want 2", len(all))
	}

	filtered := newTestScanner("fr-BE", false, "AUCUNE ANNULATION", " ").Scan(text, "notes")
	if len(filtered) != 1 || filtered[0].RiskID != "fixed_price_guarantee" {
		t.Errorf("Scan() with exclusion = %+v, want only fixed_price_guarantee", filtered)
	}
}

func TestScanKeepsOverlappingMatches(t *testing.T) {
	s := newTestScanner("fr-BE", true)
	findings := s.Scan("Délai de livraison garantie.", "notes")
	if len(findings) != 2 {
		t.Fatalf("Scan() = %d findings, want 2 overlapping", len(findings))
	}
	if findings[0].ID == findings[1].ID {
		t.Error("overlapping findings should have distinct ids")
	}
	if findings[1].Position.Start >= findings[0].Position.End {
		t.Errorf("findings should overlap: %+v %+v", findings[0].Position, findings[1].Position)
	}
	// The replace rule only applies to the first matcher's wording.
	if findings[0].AutoFix == nil {
		t.Error("first finding should carry an auto-fix")
	}
	if findings[1].AutoFix != nil {
		t.Errorf("second finding AutoFix = %+v, want nil", findings[1].AutoFix)
	}
}

func TestScanLocaleRestricted(t *testing.T) {
	text := "Onbeperkte aansprakelijkheid van de aannemer."
	if got := newTestScanner("fr-BE", false).Scan(text, "notes"); len(got) != 0 {
		t.Errorf("fr-BE Scan() = %d findings, want 0", len(got))
	}
	got := newTestScanner("nl-BE", false).Scan(text, "notes")
	if len(got) != 1 || got[0].RiskID != "unlimited_liability_nl" {
		t.Errorf("nl-BE Scan() = %+v, want unlimited_liability_nl", got)
	}
}

func TestScanUnknownLocaleUsesDefault(t *testing.T) {
	s := newTestScanner("xx-ZZ", false)
	if s.Locale() != "fr-BE" {
		t.Errorf("Locale() = %q, want fr-BE", s.Locale())
	}
}

func TestScanBlank(t *testing.T) {
	if got := newTestScanner("fr-BE", true).Scan("   ", "notes"); len(got) != 0 {
		t.Errorf("Scan(blank) = %d findings, want 0", len(got))
	}
}
