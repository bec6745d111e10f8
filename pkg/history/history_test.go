package history

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/quotecheck/pkg/quote"
	"github.com/coolbeans/quotecheck/pkg/risk"
)

func TestNewEntry(t *testing.T) {
	analyzer := risk.NewAnalyzer(risk.DefaultCatalog(), risk.DefaultOptions())
	result := analyzer.Analyze(quote.Record{"notes": "Prix fixe garanti, aucune annulation possible."}, "fr-BE", risk.SensitivityNormal)
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	e := NewEntry(result, now)
	if e.ID == uuid.Nil {
		t.Error("ID should be set")
	}
	if e.Locale != "fr-BE" || e.Sensitivity != "normal" {
		t.Errorf("Locale/Sensitivity = %s/%s", e.Locale, e.Sensitivity)
	}
	if e.Score != 23 || e.TotalRisks != 2 || e.High != 1 || e.Medium != 1 {
		t.Errorf("Entry = %+v", e)
	}
	if strings.Join(e.Categories, ",") != "price_guarantee,cancellation" {
		t.Errorf("Categories = %v", e.Categories)
	}
	if !e.CreatedAt.Equal(now) || e.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", e.CreatedAt, now)
	}

	if other := NewEntry(result, now); other.ID == e.ID {
		t.Error("entries should get distinct ids")
	}
}

func TestNewEntryNoRisks(t *testing.T) {
	e := NewEntry(&risk.AnalysisResult{Locale: "fr-CH"}, time.Now())
	if e.Categories == nil {
		t.Error("Categories should be empty, not nil")
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{7, 7},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no migrations embedded")
	}
	data, err := fs.ReadFile(migrations, names[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, marker := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE analyses"} {
		if !strings.Contains(string(data), marker) {
			t.Errorf("%s missing %q", names[0], marker)
		}
	}
}
