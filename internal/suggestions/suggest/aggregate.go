package suggest

import (
	"sort"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
)

// nameStats accumulates one exercise name's entries inside a signal window.
type nameStats struct {
	name          string
	count         int
	totalDuration int
	totalCalories int
	last          time.Time
	lastDuration  int
}

func (s *nameStats) add(e event.LogEntry) {
	s.count++
	s.totalDuration += e.DurationMinutes
	s.totalCalories += int(e.CaloriesBurned)
	if s.last.IsZero() || e.Timestamp.After(s.last) {
		s.last = e.Timestamp
		s.lastDuration = e.DurationMinutes
	}
}

// avgDuration returns the integer mean duration, or false when empty.
func (s *nameStats) avgDuration() (int, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.totalDuration / s.count, true
}

// avgCalories returns the integer mean calories, or false when empty.
func (s *nameStats) avgCalories() (int, bool) {
	if s.count == 0 {
		return 0, false
	}
	return s.totalCalories / s.count, true
}

// aggregator groups entries by exact exercise name.
type aggregator struct {
	byName map[string]*nameStats
}

func newAggregator() *aggregator {
	return &aggregator{byName: make(map[string]*nameStats)}
}

// add records e under its name. Malformed entries are ignored.
func (a *aggregator) add(e event.LogEntry) {
	if !e.Valid() {
		return
	}
	s, ok := a.byName[e.Name]
	if !ok {
		s = &nameStats{name: e.Name}
		a.byName[e.Name] = s
	}
	s.add(e)
}

// sorted returns the groups ordered by name so callers iterate deterministically.
func (a *aggregator) sorted() []*nameStats {
	out := make([]*nameStats, 0, len(a.byName))
	for _, s := range a.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}

// aggregate groups the entries accepted by keep.
func aggregate(history []event.LogEntry, keep func(event.LogEntry) bool) []*nameStats {
	agg := newAggregator()
	for _, e := range history {
		if !e.Valid() {
			continue
		}
		if keep != nil && !keep(e) {
			continue
		}
		agg.add(e)
	}
	return agg.sorted()
}
