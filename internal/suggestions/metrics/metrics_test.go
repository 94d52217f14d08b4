package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters_Snapshot_AllFields(t *testing.T) {
	c := &Counters{}

	snap := c.Snapshot()

	expectedKeys := []string{
		"suggest_requests",
		"suggest_hits",
		"suggest_misses",
		"cache_hits",
		"cache_misses",
		"entries_logged",
		"import_rows",
		"import_errors",
		"latency_sum_ms",
	}

	assert.Len(t, snap, len(expectedKeys))
	for _, key := range expectedKeys {
		val, ok := snap[key]
		if assert.True(t, ok, "missing key %q", key) {
			assert.Zero(t, val, key)
		}
	}
}

func TestCounters_IncrementAndSnapshot(t *testing.T) {
	c := &Counters{}

	c.SuggestRequests.Add(10)
	c.SuggestHits.Add(7)
	c.SuggestMisses.Add(3)
	c.CacheHits.Add(5)
	c.CacheMisses.Add(5)
	c.EntriesLogged.Add(12)
	c.ImportRows.Add(100)
	c.ImportErrors.Add(2)
	c.LatencySumMs.Add(500)

	assert.Equal(t, map[string]int64{
		"suggest_requests": 10,
		"suggest_hits":     7,
		"suggest_misses":   3,
		"cache_hits":       5,
		"cache_misses":     5,
		"entries_logged":   12,
		"import_rows":      100,
		"import_errors":    2,
		"latency_sum_ms":   500,
	}, c.Snapshot())
}

func TestCounters_Reset(t *testing.T) {
	c := &Counters{}
	c.SuggestRequests.Add(10)
	c.CacheHits.Add(5)
	c.ImportRows.Add(100)
	c.LatencySumMs.Add(500)

	c.Reset()

	for key, val := range c.Snapshot() {
		assert.Zero(t, val, "after Reset %s", key)
	}
}

func TestCounters_ConcurrentAccess(t *testing.T) {
	c := &Counters{}

	const goroutines = 100
	const increments = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				c.SuggestRequests.Add(1)
				c.EntriesLogged.Add(1)
				c.LatencySumMs.Add(1)
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	want := int64(goroutines * increments)
	assert.Equal(t, want, snap["suggest_requests"])
	assert.Equal(t, want, snap["entries_logged"])
	assert.Equal(t, want, snap["latency_sum_ms"])
}

func TestCounters_AverageSuggestLatencyMs(t *testing.T) {
	c := &Counters{}
	assert.Zero(t, c.AverageSuggestLatencyMs())

	c.SuggestRequests.Add(4)
	c.LatencySumMs.Add(100)
	assert.InDelta(t, 25.0, c.AverageSuggestLatencyMs(), 1e-9)
}

func TestCounters_CacheHitRate(t *testing.T) {
	c := &Counters{}
	assert.Zero(t, c.CacheHitRate())

	c.CacheHits.Add(3)
	c.CacheMisses.Add(7)
	assert.InDelta(t, 0.3, c.CacheHitRate(), 1e-9)
}

func TestRecordSuggest(t *testing.T) {
	Global.Reset()
	defer Global.Reset()

	hitsBefore := testutil.ToFloat64(suggestRequests.WithLabelValues(OutcomeHit))
	errorsBefore := testutil.ToFloat64(suggestRequests.WithLabelValues(OutcomeError))

	RecordSuggest(OutcomeHit, 3*time.Millisecond)
	RecordSuggest(OutcomeMiss, time.Millisecond)
	RecordSuggest(OutcomeError, time.Second)

	assert.InDelta(t, hitsBefore+1, testutil.ToFloat64(suggestRequests.WithLabelValues(OutcomeHit)), 1e-9)
	assert.InDelta(t, errorsBefore+1, testutil.ToFloat64(suggestRequests.WithLabelValues(OutcomeError)), 1e-9)

	// Errors are not counted as completed requests.
	snap := Global.Snapshot()
	assert.Equal(t, int64(2), snap["suggest_requests"])
	assert.Equal(t, int64(1), snap["suggest_hits"])
	assert.Equal(t, int64(1), snap["suggest_misses"])
	assert.Equal(t, int64(4), snap["latency_sum_ms"])
}

func TestRecordCandidates_IgnoresEmpty(t *testing.T) {
	before := testutil.ToFloat64(suggestCandidates.WithLabelValues("recently_used"))

	RecordCandidates("recently_used", 0)
	RecordCandidates("recently_used", 3)

	assert.InDelta(t, before+3, testutil.ToFloat64(suggestCandidates.WithLabelValues("recently_used")), 1e-9)
}

func TestRecordCacheLookup(t *testing.T) {
	Global.Reset()
	defer Global.Reset()

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, int64(1), Global.CacheHits.Load())
	assert.Equal(t, int64(2), Global.CacheMisses.Load())
}

func TestRecordEntriesLogged(t *testing.T) {
	Global.Reset()
	defer Global.Reset()

	before := testutil.ToFloat64(entriesLogged.WithLabelValues("import"))
	RecordEntriesLogged("import", 4)
	RecordEntriesLogged("import", -1)

	assert.InDelta(t, before+4, testutil.ToFloat64(entriesLogged.WithLabelValues("import")), 1e-9)
	assert.Equal(t, int64(4), Global.EntriesLogged.Load())
}
