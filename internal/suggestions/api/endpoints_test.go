package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/storage"
	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/suggest"
)

var testNow = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

type testServer struct {
	store *storage.SQLiteStore
	mux   *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cat := catalog.Builtin()
	cfg := suggest.DefaultConfig()
	cfg.CacheSize = -1
	engine, err := suggest.NewEngine(cat, cfg)
	require.NoError(t, err)

	h := NewHandler(HandlerDependencies{
		Engine:  engine,
		Store:   store,
		Catalog: cat,
		Now:     func() time.Time { return testNow },
	})
	return &testServer{store: store, mux: NewMux(h)}
}

func (s *testServer) seed(t *testing.T, entries ...event.LogEntry) {
	t.Helper()
	for i := range entries {
		require.NoError(t, s.store.CreateEntry(context.Background(), &entries[i]))
	}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHandleSuggest_RanksStoredHistory(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.seed(t, event.LogEntry{Name: "Running", Timestamp: testNow.AddDate(0, 0, -1), DurationMinutes: 30})

	rec := s.do(t, http.MethodGet, "/v1/suggestions?q=run&at=2026-03-04T18:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[SuggestResponse](t, rec)
	assert.Equal(t, "run", resp.Input)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "Running", resp.Suggestions[0].Exercise.Name)
	assert.Equal(t, suggest.ReasonTextMatch, resp.Suggestions[0].Reason)
	assert.InDelta(t, 0.95, resp.Suggestions[0].Confidence, 1e-9)
}

func TestHandleSuggest_EmptyHistory(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/v1/suggestions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SuggestResponse](t, rec)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
	assert.True(t, resp.At.Equal(testNow), "missing at defaults to now")
}

func TestHandleSuggest_Limit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	for i, name := range []string{"Running", "Yoga", "Cycling", "Swimming"} {
		s.seed(t, event.LogEntry{Name: name, Timestamp: testNow.Add(-time.Duration(i+1) * time.Hour)})
	}

	rec := s.do(t, http.MethodGet, "/v1/suggestions?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[SuggestResponse](t, rec).Suggestions, 2)
}

func TestHandleSuggest_Validation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	tests := []struct {
		name  string
		query string
	}{
		{"bad at", "?at=tuesday"},
		{"bad limit", "?limit=lots"},
		{"long input", "?q=" + strings.Repeat("a", MaxInputLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/v1/suggestions"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_failed", decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandleTypicalDuration(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.seed(t,
		event.LogEntry{Name: "Running", Timestamp: testNow.AddDate(0, 0, -1), DurationMinutes: 30},
		event.LogEntry{Name: "Running", Timestamp: testNow.AddDate(0, 0, -2), DurationMinutes: 40},
		event.LogEntry{Name: "Yoga", Timestamp: testNow.AddDate(0, 0, -3), DurationMinutes: 60},
	)

	rec := s.do(t, http.MethodGet, "/v1/typical-duration?name=Running", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[TypicalDurationResponse](t, rec)
	assert.True(t, resp.Found)
	assert.Equal(t, 35, resp.Minutes)

	rec = s.do(t, http.MethodGet, "/v1/typical-duration?name=Boxing", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[TypicalDurationResponse](t, rec).Found)

	rec = s.do(t, http.MethodGet, "/v1/typical-duration", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateEntry_EstimatesCalories(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/v1/entries", `{"name":"Yoga","duration_minutes":60}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	e := decode[event.LogEntry](t, rec)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Yoga", e.Name)
	assert.True(t, e.Timestamp.Equal(testNow))
	assert.InDelta(t, 180.0, e.CaloriesBurned, 1e-9)
	assert.Equal(t, event.SourceAPI, e.Source)

	// Same name at the same instant is rejected.
	rec = s.do(t, http.MethodPost, "/v1/entries", `{"name":"Yoga","duration_minutes":60}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleCreateEntry_UsesCatalogSpelling(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/v1/entries",
		`{"name":"  running ","timestamp":"2026-03-04T07:00:00Z","duration_minutes":30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Running", decode[event.LogEntry](t, rec).Name)

	// The stored spelling makes a differently cased repeat a duplicate.
	rec = s.do(t, http.MethodPost, "/v1/entries",
		`{"name":"RUNNING","timestamp":"2026-03-04T07:00:00Z","duration_minutes":30}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[EntriesResponse](t, rec).Entries
	require.Len(t, entries, 1)
	assert.Equal(t, "Running", entries[0].Name)
}

func TestHandleCreateEntry_ExplicitCaloriesAndUnknownExercise(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/v1/entries",
		`{"name":"Parkour","timestamp":"2026-03-04T07:00:00Z","duration_minutes":20,"calories_burned":250}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	e := decode[event.LogEntry](t, rec)
	assert.InDelta(t, 250.0, e.CaloriesBurned, 1e-9)

	rec = s.do(t, http.MethodPost, "/v1/entries", `{"name":"Parkour","timestamp":"2026-03-03T07:00:00Z","duration_minutes":20}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Zero(t, decode[event.LogEntry](t, rec).CaloriesBurned)
}

func TestHandleCreateEntry_Invalid(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"not json", `{`, "invalid_request"},
		{"missing name", `{"duration_minutes":10}`, "validation_failed"},
		{"negative duration", `{"name":"Running","duration_minutes":-1}`, "validation_failed"},
		{"future", `{"name":"Running","timestamp":"2026-03-05T18:00:00Z"}`, "validation_failed"},
		{"huge calories", `{"name":"Running","calories_burned":1e300}`, "validation_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/entries", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[ErrorResponse](t, rec).Error)
		})
	}
}

func TestHandleListAndDeleteEntries(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.seed(t,
		event.LogEntry{Name: "Running", Timestamp: testNow.Add(-2 * time.Hour)},
		event.LogEntry{Name: "Hiking", Timestamp: testNow.Add(-time.Hour)},
	)

	rec := s.do(t, http.MethodGet, "/v1/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[EntriesResponse](t, rec).Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "Hiking", entries[0].Name)

	rec = s.do(t, http.MethodDelete, "/v1/entries/"+entries[0].ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/v1/entries/"+entries[0].ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/entries?limit=5", "")
	assert.Len(t, decode[EntriesResponse](t, rec).Entries, 1)
}

func TestHandleCatalog(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/catalog?q=row", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CatalogResponse](t, rec)
	names := make([]string, len(resp.Entries))
	for i, e := range resp.Entries {
		names[i] = e.Name
	}
	assert.Contains(t, names, "Rowing Machine")
	assert.Equal(t, len(resp.Entries), resp.Total)

	rec = s.do(t, http.MethodGet, "/v1/catalog", "")
	assert.Equal(t, catalog.Builtin().Len(), decode[CatalogResponse](t, rec).Total)

	rec = s.do(t, http.MethodGet, "/v1/catalog?q=zzzz", "")
	assert.Equal(t, 0, decode[CatalogResponse](t, rec).Total)
}

func TestHealthzAndMetrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPut, "/v1/suggestions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slogJSON(&buf)
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "/v1/catalog", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}
