package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_assistant/internal/domain"
	"travel_assistant/internal/flow"
)

// Conversations is the session lifecycle the widget drives.
type Conversations interface {
	Open(ctx context.Context) (string, flow.BotResponse, error)
	Turn(ctx context.Context, id string, in flow.Input) (flow.BotResponse, error)
	Reset(ctx context.Context, id string) (flow.BotResponse, error)
	Close(ctx context.Context, id string) error
}

// Catalog serves the read-only catalog endpoints.
type Catalog interface {
	SearchPlans(ctx context.Context, q, city string) ([]domain.Plan, error)
	Cities(ctx context.Context) ([]string, error)
	FAQs(ctx context.Context, category string) ([]domain.FAQItem, error)
}

type Handlers struct {
	Conv    Conversations
	Catalog Catalog
	// ReplyDelay paces bot replies so the widget can show its typing indicator.
	ReplyDelay time.Duration
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type openResponse struct {
	SessionID string           `json:"sessionId"`
	Response  flow.BotResponse `json:"response"`
}

type turnRequest struct {
	Text   string `json:"text"`
	Signal string `json:"signal,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", h.openSession)
		r.Post("/{id}/turns", h.turn)
		r.Post("/{id}/reset", h.resetSession)
		r.Delete("/{id}", h.closeSession)
	})

	s.mux.Route("/v1/catalog", func(r chi.Router) {
		r.Get("/plans", h.listPlans)
		r.Get("/cities", h.listCities)
		r.Get("/faqs", h.listFAQs)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "request cancelled")
	default:
		log.Error().Err(err).Str("what", what).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write catalog body")
	}
}

// pace holds the reply for the configured delay, returning false if the client went away.
func (h *Handlers) pace(ctx context.Context) bool {
	if h.ReplyDelay <= 0 {
		return true
	}
	t := time.NewTimer(h.ReplyDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (h *Handlers) openSession(w http.ResponseWriter, r *http.Request) {
	id, resp, err := h.Conv.Open(r.Context())
	if err != nil {
		writeError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusCreated, openResponse{SessionID: id, Response: resp})
}

func (h *Handlers) turn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 16<<10)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected {\"text\": \"...\"}")
		return
	}

	var in flow.Input
	switch strings.ToLower(strings.TrimSpace(req.Signal)) {
	case "":
		in = flow.Text(req.Text)
	case "resume":
		in = flow.Resume{}
	case "restart":
		in = flow.Restart{}
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid signal", "signal must be resume or restart")
		return
	}

	// pace first: a visitor who leaves during the delay keeps their old state
	if !h.pace(r.Context()) {
		return
	}
	resp, err := h.Conv.Turn(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) resetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Conv.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Conv.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plans, err := h.Catalog.SearchPlans(r.Context(), q.Get("q"), q.Get("city"))
	if err != nil {
		writeError(w, err, "catalog")
		return
	}
	writeCached(w, r, map[string]any{"items": plans})
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Catalog.Cities(r.Context())
	if err != nil {
		writeError(w, err, "catalog")
		return
	}
	writeCached(w, r, map[string]any{"items": cities})
}

func (h *Handlers) listFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.Catalog.FAQs(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err, "catalog")
		return
	}
	writeCached(w, r, map[string]any{"items": faqs})
}
