// Package event defines the exercise log record consumed by the suggestions
// engine. Entries are written by the logging side (CLI, HTTP, CSV import) and
// are read-only to the scorers.
package event

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Source identifies how an entry entered the log.
type Source string

const (
	SourceManual Source = "manual"
	SourceImport Source = "import"
	SourceAPI    Source = "api"
)

// ValidSource returns true if s is a known entry source.
func ValidSource(s string) bool {
	switch Source(s) {
	case SourceManual, SourceImport, SourceAPI:
		return true
	default:
		return false
	}
}

// Upper bounds for a single entry.
const (
	MaxDurationMinutes = 24 * 60
	MaxCalories        = 20000
)

// ValidCalories reports whether c is a finite value in [0, MaxCalories].
func ValidCalories(c float64) bool {
	return !math.IsNaN(c) && !math.IsInf(c, 0) && c >= 0 && c <= MaxCalories
}

// LogEntry is one historical exercise fact.
type LogEntry struct {
	// ID is the storage identifier (empty for entries not yet persisted).
	ID string `json:"id,omitempty"`

	// Name is the exercise name as the user logged it.
	Name string `json:"name"`

	// Timestamp is when the exercise was performed.
	Timestamp time.Time `json:"timestamp"`

	// DurationMinutes is the logged duration.
	DurationMinutes int `json:"duration_minutes"`

	// CaloriesBurned is the logged (or estimated) energy expenditure.
	CaloriesBurned float64 `json:"calories_burned"`

	Source Source `json:"source,omitempty"`
}

// Valid reports whether the entry carries the fields every scorer needs.
// Entries without a name or timestamp are skipped, never rejected loudly.
func (e LogEntry) Valid() bool {
	return strings.TrimSpace(e.Name) != "" && !e.Timestamp.IsZero()
}

// SortNewestFirst returns a copy of entries ordered by timestamp descending.
// The sort is stable so equal timestamps keep their input order.
func SortNewestFirst(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
