// Package server exposes the analyzer, the locale packs and the analysis
// history over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coolbeans/quotecheck/pkg/history"
	"github.com/coolbeans/quotecheck/pkg/locale"
	"github.com/coolbeans/quotecheck/pkg/quote"
	"github.com/coolbeans/quotecheck/pkg/risk"
)

const maxBodyBytes = 1 << 20

// Server holds the handlers' dependencies. A nil recorder disables history.
type Server struct {
	analyzer    *risk.Analyzer
	history     history.Recorder
	sensitivity risk.Sensitivity
	now         func() time.Time
}

// New builds a Server. sensitivity applies to requests that do not name one.
func New(analyzer *risk.Analyzer, recorder history.Recorder, sensitivity risk.Sensitivity) *Server {
	if sensitivity == "" {
		sensitivity = risk.SensitivityNormal
	}
	return &Server{
		analyzer:    analyzer,
		history:     recorder,
		sensitivity: sensitivity,
		now:         time.Now,
	}
}

// Routes returns the HTTP router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/compliance", s.handleCompliance)
		r.Post("/detect-locale", s.handleDetectLocale)
		r.Get("/packs", s.handleListPacks)
		r.Get("/packs/{code}", s.handleGetPack)
		r.Get("/number", s.handleNumber)
		r.Get("/history", s.handleHistory)
	})
	return r
}

type analyzeRequest struct {
	Quote       quote.Record `json:"quote"`
	Locale      string       `json:"locale"`
	Sensitivity string       `json:"sensitivity"`
}

type analyzeResponse struct {
	ID     string               `json:"id"`
	Result *risk.AnalysisResult `json:"result"`
}

type complianceRequest struct {
	Quote  quote.Record `json:"quote"`
	Locale string       `json:"locale"`
}

type complianceResponse struct {
	Locale     string             `json:"locale"`
	Compliant  bool               `json:"compliant"`
	Violations []locale.Violation `json:"violations"`
}

type packSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Language string `json:"language"`
	Currency string `json:"currency"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quote == nil {
		writeError(w, http.StatusBadRequest, "quote is required")
		return
	}

	sensitivity := s.sensitivity
	if req.Sensitivity != "" {
		parsed, err := risk.ParseSensitivity(req.Sensitivity)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sensitivity = parsed
	}

	code := locale.Resolve(req.Locale, req.Quote)
	result := s.analyzer.Analyze(req.Quote, code, sensitivity)

	entry := history.NewEntry(result, s.now())
	if s.history != nil {
		if err := s.history.Record(r.Context(), entry); err != nil {
			log.Printf("failed to record analysis %s: %v", entry.ID, err)
		}
	}

	writeJSON(w, http.StatusOK, analyzeResponse{ID: entry.ID.String(), Result: result})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	var req complianceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quote == nil {
		writeError(w, http.StatusBadRequest, "quote is required")
		return
	}

	pack := locale.Get(locale.Resolve(req.Locale, req.Quote))
	violations := pack.CheckCompliance(req.Quote)
	writeJSON(w, http.StatusOK, complianceResponse{
		Locale:     pack.Code,
		Compliant:  !locale.HasErrors(violations),
		Violations: violations,
	})
}

func (s *Server) handleDetectLocale(w http.ResponseWriter, r *http.Request) {
	var hints locale.Hints
	if !decodeBody(w, r, &hints) {
		return
	}
	if hints.BrowserLocale == "" {
		hints.BrowserLocale = r.Header.Get("Accept-Language")
	}
	writeJSON(w, http.StatusOK, map[string]string{"locale": locale.DetectLocale(hints)})
}

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	packs := locale.List()
	out := make([]packSummary, 0, len(packs))
	for _, p := range packs {
		out = append(out, packSummary{
			Code:     p.Code,
			Name:     p.Name,
			Country:  p.Country,
			Language: p.Language,
			Currency: p.Currency.Code,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPack(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	pack, ok := locale.Lookup(code)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown locale "+strconv.Quote(code))
		return
	}
	writeJSON(w, http.StatusOK, pack)
}

func (s *Server) handleNumber(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seq, err := strconv.Atoi(q.Get("seq"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "seq must be an integer")
		return
	}
	kind, err := locale.ParseDocumentKind(q.Get("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date := s.now()
	if raw := q.Get("date"); raw != "" {
		date, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	pack := locale.Get(q.Get("locale"))
	writeJSON(w, http.StatusOK, map[string]string{
		"locale": pack.Code,
		"kind":   string(kind),
		"number": pack.FormatNumber(kind, seq, date),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, history.ErrNoStore.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := s.history.Recent(r.Context(), history.ClampLimit(limit))
	if err != nil {
		log.Printf("failed to read history: %v", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// decodeBody reads a JSON request body into v and writes a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+strings.TrimPrefix(err.Error(), "json: "))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
