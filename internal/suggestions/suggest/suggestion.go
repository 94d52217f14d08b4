// Package suggest ranks exercise suggestions for a partially typed name.
//
// Five independent signals (text match, time of day, day of week, recency,
// frequency) each turn a history snapshot into candidates with a confidence
// in [0, 1]. The merger keeps the strongest candidate per exercise, sorts by
// confidence and truncates. Given the same input, reference instant, history
// and catalog the result is always the same.
package suggest

import (
	"log/slog"
	"time"

	"github.com/runger/fitcue/internal/catalog"
)

// Reason tags the signal that produced a suggestion.
type Reason string

const (
	ReasonTextMatch      Reason = "text_match"
	ReasonTimeOfDay      Reason = "time_of_day"
	ReasonDayOfWeek      Reason = "day_of_week"
	ReasonRecentlyUsed   Reason = "recently_used"
	ReasonFrequentlyUsed Reason = "frequently_used"
)

// AllReasons lists reasons in scorer order.
var AllReasons = []Reason{
	ReasonTextMatch,
	ReasonTimeOfDay,
	ReasonDayOfWeek,
	ReasonRecentlyUsed,
	ReasonFrequentlyUsed,
}

// Suggestion is a ranked exercise candidate.
type Suggestion struct {
	Exercise   catalog.Entry `json:"exercise"`
	Confidence float64       `json:"confidence"`
	Reason     Reason        `json:"reason"`

	TypicalDurationMinutes *int       `json:"typical_duration_minutes,omitempty"`
	TypicalCalories        *int       `json:"typical_calories,omitempty"`
	LastPerformed          *time.Time `json:"last_performed,omitempty"`
}

// CatalogLookup resolves a name to canonical catalog metadata.
// Matching is exact and case-insensitive.
type CatalogLookup interface {
	Resolve(name string) (catalog.Entry, bool)
}

// Default configuration.
const (
	// DefaultMaxResults is the number of suggestions to return.
	DefaultMaxResults = 5

	// MaxMaxResults bounds caller-supplied limits.
	MaxMaxResults = 50

	// DefaultHistoryLimit is the size of the history snapshot fetched per request.
	DefaultHistoryLimit = 200

	// DefaultCacheSize is the number of memoised results kept by an Engine.
	DefaultCacheSize = 128

	// DefaultTypicalDurationWindow is how many recent entries feed TypicalDuration.
	DefaultTypicalDurationWindow = 10
)

// Params tunes the signal windows and thresholds.
type Params struct {
	// TimeWindowHours is the +/- hour-of-day window for the time-of-day signal.
	TimeWindowHours int

	// MinPatternOccurrences is the minimum count before a time or weekday
	// pattern is trusted.
	MinPatternOccurrences int

	// RecencyWindow is how many of the newest entries the recency signal reads.
	RecencyWindow int

	// RecencyDecayDays is the age at which recency confidence reaches zero.
	RecencyDecayDays float64

	// FrequencyTopN is how many of the most frequent names are scored.
	FrequencyTopN int

	// FuzzyMatch admits names that do not contain the input but are close
	// by edit distance.
	FuzzyMatch bool

	// FuzzyMinSimilarity is the similarity floor for FuzzyMatch.
	FuzzyMinSimilarity float64
}

// DefaultParams returns the default signal parameters.
func DefaultParams() Params {
	return Params{
		TimeWindowHours:       2,
		MinPatternOccurrences: 2,
		RecencyWindow:         20,
		RecencyDecayDays:      30,
		FrequencyTopN:         10,
		FuzzyMatch:            false,
		FuzzyMinSimilarity:    0.5,
	}
}

// Config configures an Engine.
type Config struct {
	Params     Params
	MaxResults int

	// HistoryLimit is the snapshot size requested from a HistorySource.
	HistoryLimit int

	// TypicalDurationWindow is how many matching entries TypicalDuration averages.
	TypicalDurationWindow int

	// Parallel evaluates the signals on separate goroutines.
	Parallel bool

	// CacheSize is the LRU capacity for memoised results (0 disables).
	CacheSize int

	Logger *slog.Logger
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Params:       DefaultParams(),
		MaxResults:   DefaultMaxResults,
		HistoryLimit: DefaultHistoryLimit,

		TypicalDurationWindow: DefaultTypicalDurationWindow,

		Parallel:  true,
		CacheSize: DefaultCacheSize,
		Logger:    slog.Default(),
	}
}

// normalize fills zero or out-of-range values with defaults.
func (c Config) normalize() Config {
	d := DefaultParams()
	if c.Params.TimeWindowHours <= 0 {
		c.Params.TimeWindowHours = d.TimeWindowHours
	}
	if c.Params.MinPatternOccurrences <= 0 {
		c.Params.MinPatternOccurrences = d.MinPatternOccurrences
	}
	if c.Params.RecencyWindow <= 0 {
		c.Params.RecencyWindow = d.RecencyWindow
	}
	if c.Params.RecencyDecayDays <= 0 {
		c.Params.RecencyDecayDays = d.RecencyDecayDays
	}
	if c.Params.FrequencyTopN <= 0 {
		c.Params.FrequencyTopN = d.FrequencyTopN
	}
	if c.Params.FuzzyMinSimilarity <= 0 || c.Params.FuzzyMinSimilarity > 1 {
		c.Params.FuzzyMinSimilarity = d.FuzzyMinSimilarity
	}
	c.MaxResults = clampMaxResults(c.MaxResults)
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.TypicalDurationWindow <= 0 {
		c.TypicalDurationWindow = DefaultTypicalDurationWindow
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

func clampMaxResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxMaxResults {
		return MaxMaxResults
	}
	return n
}

func intPtr(v int) *int {
	return &v
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
