package suggest

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/metrics"
)

// Request is a single suggestion call.
type Request struct {
	// Input is the partially typed exercise name. Case is ignored.
	Input string

	// At is the reference instant. Hour and weekday are taken in its location.
	At time.Time

	// History is the snapshot to score, ideally newest first.
	History []event.LogEntry

	// MaxResults overrides the configured limit when > 0.
	MaxResults int
}

// SignalResult holds the candidates one signal produced before merging.
type SignalResult struct {
	Reason     Reason
	Candidates []Suggestion
	Elapsed    time.Duration
}

// Ranking is a merged result plus the per-signal candidates behind it.
type Ranking struct {
	Signals     []SignalResult
	Suggestions []Suggestion
}

// HistorySource returns recent log entries ordered newest first.
type HistorySource interface {
	RecentEntries(ctx context.Context, limit int) ([]event.LogEntry, error)
}

// GetSuggestions ranks suggestions for input at the reference instant using
// default parameters. It is a pure function of its arguments.
func GetSuggestions(input string, at time.Time, history []event.LogEntry, lookup CatalogLookup, maxResults int) []Suggestion {
	if lookup == nil {
		return nil
	}
	r := rank(newSignalInput(input, at, history, lookup, DefaultParams()), clampMaxResults(maxResults), false)
	return r.Suggestions
}

// Rank scores and merges one request with the given parameters, sequentially.
func Rank(req Request, lookup CatalogLookup, params Params) Ranking {
	if lookup == nil {
		return Ranking{}
	}
	cfg := Config{Params: params}.normalize()
	return rank(newSignalInput(req.Input, req.At, req.History, lookup, cfg.Params), clampMaxResults(req.MaxResults), false)
}

func newSignalInput(input string, at time.Time, history []event.LogEntry, lookup CatalogLookup, params Params) signalInput {
	return signalInput{
		input:   strings.ToLower(strings.TrimSpace(input)),
		at:      at,
		history: cleanHistory(history),
		lookup:  lookup,
		params:  params,
	}
}

// cleanHistory drops malformed entries and orders the rest newest first.
func cleanHistory(history []event.LogEntry) []event.LogEntry {
	valid := make([]event.LogEntry, 0, len(history))
	for _, e := range history {
		if e.Valid() {
			valid = append(valid, e)
		}
	}
	return event.SortNewestFirst(valid)
}

// rank evaluates every signal and merges the candidates. The merge waits
// for all signals; results are slotted by index so order is fixed.
func rank(in signalInput, maxResults int, parallel bool) Ranking {
	results := make([]SignalResult, len(signals))
	run := func(i int) {
		start := time.Now()
		results[i] = SignalResult{
			Reason:     signals[i].reason,
			Candidates: signals[i].score(in),
			Elapsed:    time.Since(start),
		}
	}

	if parallel {
		var wg sync.WaitGroup
		wg.Add(len(signals))
		for i := range signals {
			go func(i int) {
				defer wg.Done()
				run(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range signals {
			run(i)
		}
	}

	lists := make([][]Suggestion, len(results))
	for i, r := range results {
		lists[i] = r.Candidates
	}
	return Ranking{
		Signals:     results,
		Suggestions: Merge(lists, in.lookup, maxResults),
	}
}

// Engine ranks suggestions against a fixed catalog and memoises results.
// It is safe for concurrent use.
type Engine struct {
	lookup CatalogLookup
	cfg    Config
	cache  *resultCache
}

// NewEngine creates an engine resolving names through lookup.
func NewEngine(lookup CatalogLookup, cfg Config) (*Engine, error) {
	if lookup == nil {
		return nil, errors.New("suggest: catalog lookup is required")
	}
	cfg = cfg.normalize()

	e := &Engine{lookup: lookup, cfg: cfg}
	if cfg.CacheSize > 0 {
		e.cache = newResultCache(cfg.CacheSize)
	}
	return e, nil
}

// Config returns the normalized engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Suggest ranks suggestions for req. Identical requests are served from
// the memoisation cache. It fails only if ctx is already done.
func (e *Engine) Suggest(ctx context.Context, req Request) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecordSuggest(metrics.OutcomeError, 0)
		return nil, err
	}

	start := time.Now()
	maxResults := e.maxResults(req.MaxResults)

	var key cacheKey
	if e.cache != nil {
		key = newCacheKey(req, maxResults)
		if cached, ok := e.cache.get(key); ok {
			metrics.RecordCacheLookup(true)
			e.record(cached, time.Since(start))
			return cached, nil
		}
		metrics.RecordCacheLookup(false)
	}

	ranking := e.rank(req, maxResults)
	if e.cache != nil {
		e.cache.put(key, ranking.Suggestions)
	}
	e.record(ranking.Suggestions, time.Since(start))
	return ranking.Suggestions, nil
}

// Explain ranks req without the cache and returns the per-signal candidates.
func (e *Engine) Explain(ctx context.Context, req Request) (Ranking, error) {
	if err := ctx.Err(); err != nil {
		return Ranking{}, err
	}
	return e.rank(req, e.maxResults(req.MaxResults)), nil
}

// SuggestFrom fetches a history snapshot from src and ranks against it.
func (e *Engine) SuggestFrom(ctx context.Context, src HistorySource, input string, at time.Time, maxResults int) ([]Suggestion, error) {
	history, err := src.RecentEntries(ctx, e.cfg.HistoryLimit)
	if err != nil {
		metrics.RecordSuggest(metrics.OutcomeError, 0)
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return e.Suggest(ctx, Request{Input: input, At: at, History: history, MaxResults: maxResults})
}

// TypicalDuration averages the most recent matching entries in history.
func (e *Engine) TypicalDuration(name string, history []event.LogEntry) (int, bool) {
	return typicalDuration(name, cleanHistory(history), e.cfg.TypicalDurationWindow)
}

func (e *Engine) rank(req Request, maxResults int) Ranking {
	in := newSignalInput(req.Input, req.At, req.History, e.lookup, e.cfg.Params)
	r := rank(in, maxResults, e.cfg.Parallel)

	for _, s := range r.Signals {
		metrics.RecordCandidates(string(s.Reason), len(s.Candidates))
		e.cfg.Logger.Debug("signal scored",
			"reason", s.Reason,
			"candidates", len(s.Candidates),
			"elapsed_us", s.Elapsed.Microseconds(),
		)
	}
	return r
}

func (e *Engine) record(out []Suggestion, elapsed time.Duration) {
	outcome := metrics.OutcomeMiss
	if len(out) > 0 {
		outcome = metrics.OutcomeHit
	}
	metrics.RecordSuggest(outcome, elapsed)
}

func (e *Engine) maxResults(n int) int {
	if n <= 0 {
		return e.cfg.MaxResults
	}
	return clampMaxResults(n)
}

// fingerprint hashes everything a ranking depends on.
func fingerprint(req Request, maxResults int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}

	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(req.Input))))
	_, _ = h.Write([]byte{0})
	putInt(req.At.UnixNano())
	_, offset := req.At.Zone()
	putInt(int64(offset))
	_, _ = h.Write([]byte(req.At.Location().String()))
	putInt(int64(maxResults))

	for _, e := range req.History {
		_, _ = h.Write([]byte(e.Name))
		_, _ = h.Write([]byte{0})
		putInt(e.Timestamp.UnixNano())
		putInt(int64(e.DurationMinutes))
		putInt(int64(math.Float64bits(e.CaloriesBurned)))
	}
	return h.Sum64()
}

// cloneSuggestions copies in, including the values behind its pointer
// fields.
func cloneSuggestions(in []Suggestion) []Suggestion {
	if in == nil {
		return nil
	}
	out := make([]Suggestion, len(in))
	copy(out, in)
	for i := range out {
		if p := out[i].TypicalDurationMinutes; p != nil {
			out[i].TypicalDurationMinutes = intPtr(*p)
		}
		if p := out[i].TypicalCalories; p != nil {
			out[i].TypicalCalories = intPtr(*p)
		}
		if p := out[i].LastPerformed; p != nil {
			t := *p
			out[i].LastPerformed = &t
		}
	}
	return out
}
