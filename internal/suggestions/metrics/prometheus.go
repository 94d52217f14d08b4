package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for suggest requests.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

var (
	suggestRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcue",
		Subsystem: "suggest",
		Name:      "requests_total",
		Help:      "Suggest requests grouped by outcome.",
	}, []string{"outcome"})

	suggestCandidates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcue",
		Subsystem: "suggest",
		Name:      "candidates_total",
		Help:      "Candidates emitted by each signal before merging.",
	}, []string{"reason"})

	suggestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitcue",
		Subsystem: "suggest",
		Name:      "latency_seconds",
		Help:      "Time spent ranking suggestions.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcue",
		Subsystem: "suggest",
		Name:      "cache_lookups_total",
		Help:      "Memoised result lookups grouped by result.",
	}, []string{"result"})

	entriesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcue",
		Subsystem: "store",
		Name:      "entries_logged_total",
		Help:      "Log entries stored grouped by source.",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(suggestRequests, suggestCandidates, suggestLatency, cacheLookups, entriesLogged)
}

// RecordSuggest records one completed suggest request.
func RecordSuggest(outcome string, elapsed time.Duration) {
	suggestRequests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeError {
		return
	}
	suggestLatency.Observe(elapsed.Seconds())

	Global.SuggestRequests.Add(1)
	Global.LatencySumMs.Add(elapsed.Milliseconds())
	if outcome == OutcomeHit {
		Global.SuggestHits.Add(1)
	} else {
		Global.SuggestMisses.Add(1)
	}
}

// RecordCandidates records how many candidates a signal emitted.
func RecordCandidates(reason string, n int) {
	if n <= 0 {
		return
	}
	suggestCandidates.WithLabelValues(reason).Add(float64(n))
}

// RecordCacheLookup records a memoisation lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		Global.CacheHits.Add(1)
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
	Global.CacheMisses.Add(1)
}

// RecordEntriesLogged records n stored log entries from source.
func RecordEntriesLogged(source string, n int) {
	if n <= 0 {
		return
	}
	entriesLogged.WithLabelValues(source).Add(float64(n))
	Global.EntriesLogged.Add(int64(n))
}
