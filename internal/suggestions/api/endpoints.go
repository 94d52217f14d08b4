// Package api provides the HTTP endpoints served by `fitcue serve`.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/storage"
	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/suggest"
)

// EntryStore is the slice of the log store the handlers need.
type EntryStore interface {
	suggest.HistorySource
	CreateEntry(ctx context.Context, e *event.LogEntry) error
	DeleteEntry(ctx context.Context, id string) error
	EntriesByName(ctx context.Context, name string, limit int) ([]event.LogEntry, error)
}

// SuggestResponse is the response for GET /v1/suggestions.
type SuggestResponse struct {
	Input       string               `json:"input"`
	At          time.Time            `json:"at"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// TypicalDurationResponse is the response for GET /v1/typical-duration.
type TypicalDurationResponse struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes,omitempty"`
	Found   bool   `json:"found"`
}

// EntriesResponse is the response for GET /v1/entries.
type EntriesResponse struct {
	Entries []event.LogEntry `json:"entries"`
}

// CatalogResponse is the response for GET /v1/catalog.
type CatalogResponse struct {
	Entries []catalog.Entry `json:"entries"`
	Total   int             `json:"total"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler provides HTTP handlers for the suggestions API.
type Handler struct {
	engine  *suggest.Engine
	store   EntryStore
	catalog *catalog.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// HandlerDependencies contains required dependencies for the handler.
type HandlerDependencies struct {
	Engine  *suggest.Engine
	Store   EntryStore
	Catalog *catalog.Catalog
	Logger  *slog.Logger

	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDependencies) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Handler{
		engine:  deps.Engine,
		store:   deps.Store,
		catalog: deps.Catalog,
		logger:  deps.Logger,
		now:     deps.Now,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/suggestions", h.HandleSuggest)
	mux.HandleFunc("GET /v1/typical-duration", h.HandleTypicalDuration)
	mux.HandleFunc("GET /v1/entries", h.HandleListEntries)
	mux.HandleFunc("POST /v1/entries", h.HandleCreateEntry)
	mux.HandleFunc("DELETE /v1/entries/{id}", h.HandleDeleteEntry)
	mux.HandleFunc("GET /v1/catalog", h.HandleCatalog)
	mux.HandleFunc("GET /healthz", healthz)
}

// healthz reports a simple OK status for health checks.
func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleSuggest ranks suggestions for ?q= at ?at= against the stored log.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	q, result := ParseSuggestQuery(r.URL.Query(), h.now())
	if result.HasErrors() {
		h.writeValidationError(w, result)
		return
	}
	result.LogWarnings(h.logger)

	suggestions, err := h.engine.SuggestFrom(r.Context(), h.store, q.Input, q.At, q.Limit)
	if err != nil {
		h.logger.Error("suggestion failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "suggest_failed", "Failed to compute suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}

	h.writeJSON(w, http.StatusOK, SuggestResponse{
		Input:       q.Input,
		At:          q.At,
		Suggestions: suggestions,
	})
}

// HandleTypicalDuration averages the most recent durations logged for ?name=.
func (h *Handler) HandleTypicalDuration(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		h.writeError(w, http.StatusBadRequest, "missing_name", "name is required")
		return
	}

	history, err := h.store.EntriesByName(r.Context(), name, h.engine.Config().TypicalDurationWindow)
	if err != nil {
		h.logger.Error("typical duration failed", "name", name, "error", err)
		h.writeError(w, http.StatusInternalServerError, "query_failed", "Failed to read history")
		return
	}

	minutes, ok := h.engine.TypicalDuration(name, history)
	h.writeJSON(w, http.StatusOK, TypicalDurationResponse{Name: name, Minutes: minutes, Found: ok})
}

// HandleListEntries returns the most recent entries, newest first.
func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	result := &ValidationResult{}
	limit := parseLimit(result, r.URL.Query().Get("limit"), suggest.DefaultHistoryLimit)
	if result.HasErrors() {
		h.writeValidationError(w, result)
		return
	}
	if limit == 0 {
		limit = 20
	}

	entries, err := h.store.RecentEntries(r.Context(), limit)
	if err != nil {
		h.logger.Error("list entries failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "query_failed", "Failed to read history")
		return
	}
	if entries == nil {
		entries = []event.LogEntry{}
	}
	h.writeJSON(w, http.StatusOK, EntriesResponse{Entries: entries})
}

// HandleCreateEntry logs an exercise under the catalog's spelling of its
// name when the catalog knows it. Calories are estimated from the catalog
// when omitted.
func (h *Handler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON request body")
		return
	}

	result := req.Validate(h.now())
	if result.HasErrors() {
		h.writeValidationError(w, result)
		return
	}
	result.LogWarnings(h.logger)

	name := req.Name
	if h.catalog != nil {
		if e, ok := h.catalog.Resolve(name); ok {
			name = e.Name
		}
	}

	entry := event.LogEntry{
		Name:            name,
		Timestamp:       req.Timestamp.UTC(),
		DurationMinutes: req.DurationMinutes,
		Source:          event.SourceAPI,
	}
	switch {
	case req.CaloriesBurned != nil:
		entry.CaloriesBurned = *req.CaloriesBurned
	case h.catalog != nil:
		if kcal, err := h.catalog.EstimateCalories(name, req.DurationMinutes); err == nil {
			entry.CaloriesBurned = kcal
		}
	}

	if err := h.store.CreateEntry(r.Context(), &entry); err != nil {
		if errors.Is(err, storage.ErrDuplicateEntry) {
			h.writeError(w, http.StatusConflict, "duplicate_entry", err.Error())
			return
		}
		h.logger.Error("create entry failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "create_failed", "Failed to store entry")
		return
	}

	h.writeJSON(w, http.StatusCreated, entry)
}

// HandleDeleteEntry removes one entry by ID.
func (h *Handler) HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "entry not found")
			return
		}
		h.logger.Error("delete entry failed", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCatalog searches the catalog by ?q=, or lists it when q is empty.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var entries []catalog.Entry
	if q == "" {
		entries = h.catalog.Entries()
	} else {
		entries = h.catalog.Search(q)
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	h.writeJSON(w, http.StatusOK, CatalogResponse{Entries: entries, Total: len(entries)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, errorCode, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

func (h *Handler) writeValidationError(w http.ResponseWriter, result *ValidationResult) {
	h.writeError(w, http.StatusBadRequest, "validation_failed", result.FirstError().Error())
}
