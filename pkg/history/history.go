// Package history persists a summary of every analysis served over HTTP.
// Quote contents are never stored, only the scores and counts.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/quotecheck/pkg/risk"
)

// ErrNoStore is returned when history is requested but no database is
// configured.
var ErrNoStore = errors.New("history store not configured")

// DefaultLimit and MaxLimit bound Recent queries.
const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Entry is the stored summary of one analysis.
type Entry struct {
	ID               uuid.UUID `json:"id"`
	Locale           string    `json:"locale"`
	Sensitivity      string    `json:"sensitivity"`
	Score            int       `json:"score"`
	TotalRisks       int       `json:"totalRisks"`
	Critical         int       `json:"critical"`
	High             int       `json:"high"`
	Medium           int       `json:"medium"`
	Low              int       `json:"low"`
	AutoFixAvailable bool      `json:"autoFixAvailable"`
	Categories       []string  `json:"categories"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewEntry summarizes result under a fresh id.
func NewEntry(result *risk.AnalysisResult, now time.Time) Entry {
	categories := []string{}
	for _, c := range result.Categories() {
		categories = append(categories, string(c))
	}
	return Entry{
		ID:               uuid.New(),
		Locale:           result.Locale,
		Sensitivity:      string(result.Sensitivity),
		Score:            result.Score,
		TotalRisks:       result.TotalRisks,
		Critical:         result.Critical,
		High:             result.High,
		Medium:           result.Medium,
		Low:              result.Low,
		AutoFixAvailable: result.AutoFixAvailable,
		Categories:       categories,
		CreatedAt:        now.UTC(),
	}
}

// Recorder stores and lists entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// ClampLimit maps non-positive limits to DefaultLimit and caps at MaxLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
