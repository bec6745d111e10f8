package risk

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/coolbeans/quotecheck/pkg/quote"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultCatalog(), DefaultOptions())
}

func TestAnalyzeFixedPriceAndCancellation(t *testing.T) {
	r := quote.Record{"notes": "Prix fixe garanti, aucune annulation possible."}
	result := newTestAnalyzer().Analyze(r, "fr-BE", SensitivityNormal)

	if result.TotalRisks != 2 {
		t.Fatalf("TotalRisks = %d, want 2: %+v", result.TotalRisks, result.Risks)
	}
	if result.Risks[0].RiskID != "fixed_price_guarantee" || result.Risks[0].Severity != SeverityHigh {
		t.Errorf("Risks[0] = %s/%s, want fixed_price_guarantee/high", result.Risks[0].RiskID, result.Risks[0].Severity)
	}
	if result.Risks[1].RiskID != "no_cancellation" || result.Risks[1].Severity != SeverityMedium {
		t.Errorf("Risks[1] = %s/%s, want no_cancellation/medium", result.Risks[1].RiskID, result.Risks[1].Severity)
	}
	if result.Risks[1].ID != "no_cancellation-notes-0-19" {
		t.Errorf("Risks[1].ID = %q", result.Risks[1].ID)
	}
	if result.Score != 23 {
		t.Errorf("Score = %d, want 23", result.Score)
	}
	if result.High != 1 || result.Medium != 1 || result.Critical != 0 || result.Low != 0 {
		t.Errorf("counts = %d/%d/%d/%d", result.Critical, result.High, result.Medium, result.Low)
	}
	if !result.HasRisks || !result.AutoFixAvailable {
		t.Errorf("HasRisks = %v, AutoFixAvailable = %v; want true, true", result.HasRisks, result.AutoFixAvailable)
	}

	c := DefaultCatalog()
	want := []string{c.Recommendations[CategoryPriceGuarantee], c.AutoFixRecommendation}
	if strings.Join(result.Recommendations, "|") != strings.Join(want, "|") {
		t.Errorf("Recommendations = %v, want %v", result.Recommendations, want)
	}
}

func TestAnalyzeEmptyQuote(t *testing.T) {
	a := newTestAnalyzer()
	for _, code := range []string{"fr-BE", "nl-BE", "de-BE", "fr-CH"} {
		result := a.Analyze(quote.Record{"notes": ""}, code, SensitivityNormal)
		if result.HasRisks || result.Score != 0 || len(result.Recommendations) != 0 {
			t.Errorf("%s: HasRisks = %v, Score = %d, Recommendations = %v; want no risks", code, result.HasRisks, result.Score, result.Recommendations)
		}
		if result.Risks == nil || result.Recommendations == nil {
			t.Errorf("%s: Risks and Recommendations should be empty, not nil", code)
		}
	}

	// French B2B quotes must carry the late payment wording.
	result := a.Analyze(quote.Record{}, "fr-FR", SensitivityNormal)
	if !result.HasRisks || result.TotalRisks != 1 || result.Risks[0].ID != "missing-fr_late_payment" {
		t.Errorf("fr-FR empty quote = %+v, want one missing mention", result.Risks)
	}
	if result.Score != 15 {
		t.Errorf("fr-FR Score = %d, want 15", result.Score)
	}
}

func TestAnalyzeScoreSaturates(t *testing.T) {
	notes := strings.Repeat("Travail garanti à 100% ; ", 5)
	result := newTestAnalyzer().Analyze(quote.Record{"notes": notes}, "fr-BE", SensitivityStrict)
	if result.Critical != 5 {
		t.Fatalf("Critical = %d, want 5", result.Critical)
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		severities []Severity
		want       int
	}{
		{nil, 0},
		{[]Severity{SeverityInfo, SeverityInfo}, 0},
		{[]Severity{SeverityHigh, SeverityMedium}, 23},
		{[]Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}, 51},
		{[]Severity{SeverityCritical, SeverityCritical, SeverityCritical, SeverityCritical, SeverityCritical}, 100},
	}
	for _, tt := range tests {
		risks := make([]DetectedRisk, len(tt.severities))
		for i, s := range tt.severities {
			risks[i].Severity = s
		}
		if got := Score(risks); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.severities, got, tt.want)
		}
	}
}

func TestFilterBySensitivityMonotonic(t *testing.T) {
	var risks []DetectedRisk
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		risks = append(risks, DetectedRisk{ID: string(s), Severity: s})
	}

	strict := FilterBySensitivity(risks, SensitivityStrict)
	normal := FilterBySensitivity(risks, SensitivityNormal)
	permissive := FilterBySensitivity(risks, SensitivityPermissive)

	if len(strict) != 5 || len(normal) != 3 || len(permissive) != 1 {
		t.Fatalf("filtered sizes = %d/%d/%d, want 5/3/1", len(strict), len(normal), len(permissive))
	}
	subset := func(small, large []DetectedRisk) bool {
		ids := make(map[string]bool, len(large))
		for _, r := range large {
			ids[r.ID] = true
		}
		for _, r := range small {
			if !ids[r.ID] {
				return false
			}
		}
		return true
	}
	if !subset(normal, strict) || !subset(permissive, normal) {
		t.Error("sensitivity filters should be nested")
	}
	if permissive[0].Severity != SeverityCritical {
		t.Errorf("permissive kept %s, want critical", permissive[0].Severity)
	}
}

func TestAnalyzeScansItemsAndFields(t *testing.T) {
	r := quote.Record{
		"title":       "Rénovation, travaux divers",
		"description": 42,
		"client": map[string]any{
			"address": "etc.",
		},
		"items": []any{
			map[string]any{"description": "Peinture"},
			"not an item",
			map[string]any{"description": "Responsabilité illimitée"},
			map[string]any{"description": nil},
		},
	}
	result := newTestAnalyzer().Analyze(r, "fr-BE", SensitivityStrict)

	fields := make(map[string]string)
	for _, risk := range result.Risks {
		fields[risk.Position.Field] = risk.RiskID
	}
	if fields["title"] != "open_scope" {
		t.Errorf("title finding = %q, want open_scope", fields["title"])
	}
	if fields["items[2].description"] != "unlimited_liability" {
		t.Errorf("items[2].description finding = %q, want unlimited_liability", fields["items[2].description"])
	}
	if _, ok := fields["client.address"]; ok {
		t.Error("client.address is not a configured field")
	}
	if len(fields) != 2 {
		t.Errorf("findings on %d fields, want 2: %v", len(fields), fields)
	}

	custom := NewAnalyzer(DefaultCatalog(), Options{Fields: []string{"client.address"}})
	result = custom.Analyze(r, "fr-BE", SensitivityStrict)
	found := false
	for _, risk := range result.Risks {
		if risk.Position.Field == "client.address" {
			found = true
			if risk.AutoFix != nil {
				t.Error("auto-fix should be disabled")
			}
		}
	}
	if !found {
		t.Error("custom field client.address should be scanned")
	}
}

func TestAnalyzeFallbacks(t *testing.T) {
	r := quote.Record{"notes": "Un résultat garanti, etc."}
	a := newTestAnalyzer()

	result := a.Analyze(r, "xx-ZZ", "loud")
	if result.Locale != "fr-BE" {
		t.Errorf("Locale = %q, want fr-BE", result.Locale)
	}
	if result.Sensitivity != SensitivityNormal {
		t.Errorf("Sensitivity = %q, want normal", result.Sensitivity)
	}
	// "etc." is low and is filtered out at normal sensitivity.
	if result.TotalRisks != 1 || result.Low != 0 {
		t.Errorf("TotalRisks = %d, Low = %d; want 1, 0", result.TotalRisks, result.Low)
	}

	if got := a.Analyze(r, "fr-BE", "STRICT").Sensitivity; got != SensitivityStrict {
		t.Errorf("Sensitivity = %q, want strict", got)
	}
	if got := a.Analyze(nil, "fr-BE", SensitivityNormal); got.HasRisks {
		t.Errorf("Analyze(nil) = %+v, want no risks", got)
	}
}

func TestAnalysisResultJSON(t *testing.T) {
	result := newTestAnalyzer().Analyze(quote.Record{"notes": "Prix garanti."}, "fr-BE", SensitivityNormal)
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{`"hasRisks":true`, `"totalRisks":1`, `"riskId":"fixed_price_guarantee"`, `"autoFix":{"type":"append"`, `"autoFixAvailable":true`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}

	empty, _ := json.Marshal(newTestAnalyzer().Analyze(quote.Record{}, "fr-BE", SensitivityNormal))
	if !strings.Contains(string(empty), `"risks":[]`) || !strings.Contains(string(empty), `"recommendations":[]`) {
		t.Errorf("empty result JSON = %s, want empty arrays", empty)
	}
}

func TestCategories(t *testing.T) {
	result := &AnalysisResult{Risks: []DetectedRisk{
		{Category: CategoryAmbiguity},
		{Category: CategoryBindingCommitment},
		{Category: CategoryAmbiguity},
	}}
	got := result.Categories()
	if len(got) != 2 || got[0] != CategoryBindingCommitment || got[1] != CategoryAmbiguity {
		t.Errorf("Categories() = %v", got)
	}
}

func TestParseSensitivity(t *testing.T) {
	for in, want := range map[string]Sensitivity{"": SensitivityNormal, "Strict": SensitivityStrict, " permissive ": SensitivityPermissive} {
		got, err := ParseSensitivity(in)
		if err != nil || got != want {
			t.Errorf("ParseSensitivity(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSensitivity("paranoid"); err == nil {
		t.Error("ParseSensitivity(paranoid) should return error")
	}
}
