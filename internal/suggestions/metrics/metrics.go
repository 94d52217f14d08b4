// Package metrics provides atomic counters and Prometheus collectors for
// suggestion engine observability. Counters are lock-free (sync/atomic)
// and safe for concurrent use.
package metrics

import (
	"sync/atomic"
)

// Counters holds atomic observability counters for the suggestion engine.
type Counters struct {
	SuggestRequests atomic.Int64 // total suggest calls
	SuggestHits     atomic.Int64 // requests that produced >= 1 suggestion
	SuggestMisses   atomic.Int64 // requests that produced zero suggestions
	CacheHits       atomic.Int64 // memoised result served
	CacheMisses     atomic.Int64 // result computed
	EntriesLogged   atomic.Int64 // log entries stored
	ImportRows      atomic.Int64 // rows accepted by import
	ImportErrors    atomic.Int64 // rows rejected by import
	LatencySumMs    atomic.Int64 // cumulative suggest latency for average calculation
}

// Global is the process-wide metrics singleton.
var Global = &Counters{}

// Snapshot returns a point-in-time copy of all counters as a string-keyed map.
// The snapshot is consistent per-field but not across fields.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"suggest_requests": c.SuggestRequests.Load(),
		"suggest_hits":     c.SuggestHits.Load(),
		"suggest_misses":   c.SuggestMisses.Load(),
		"cache_hits":       c.CacheHits.Load(),
		"cache_misses":     c.CacheMisses.Load(),
		"entries_logged":   c.EntriesLogged.Load(),
		"import_rows":      c.ImportRows.Load(),
		"import_errors":    c.ImportErrors.Load(),
		"latency_sum_ms":   c.LatencySumMs.Load(),
	}
}

// Reset zeroes all counters.
func (c *Counters) Reset() {
	c.SuggestRequests.Store(0)
	c.SuggestHits.Store(0)
	c.SuggestMisses.Store(0)
	c.CacheHits.Store(0)
	c.CacheMisses.Store(0)
	c.EntriesLogged.Store(0)
	c.ImportRows.Store(0)
	c.ImportErrors.Store(0)
	c.LatencySumMs.Store(0)
}

// AverageSuggestLatencyMs returns the mean suggest latency in milliseconds.
// Returns 0 if no requests have been recorded.
func (c *Counters) AverageSuggestLatencyMs() float64 {
	reqs := c.SuggestRequests.Load()
	if reqs == 0 {
		return 0
	}
	return float64(c.LatencySumMs.Load()) / float64(reqs)
}

// CacheHitRate returns the cache hit rate as a fraction in [0, 1].
// Returns 0 if no cache lookups have been recorded.
func (c *Counters) CacheHitRate() float64 {
	hits := c.CacheHits.Load()
	misses := c.CacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
