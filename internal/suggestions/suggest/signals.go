package suggest

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/typo"
)

// Signal scaling. Each signal saturates at a count and is capped at a
// ceiling; text intent ranks above behavioural patterns.
const (
	textExactBase     = 1.0
	textPrefixBase    = 0.9
	textContainsBase  = 0.7
	textFuzzyWeight   = 0.6
	textUsageDivisor  = 20.0
	textUsageBoostCap = 0.2

	timeOfDaySaturation = 20.0
	timeOfDayCeiling    = 0.8

	dayOfWeekSaturation = 15.0
	dayOfWeekCeiling    = 0.7

	recencyCeiling = 0.6

	frequencySaturation = 50.0
	frequencyCeiling    = 0.5
)

// signalInput is everything a signal may read. Signals never mutate it.
type signalInput struct {
	input   string // lower-cased, trimmed
	at      time.Time
	history []event.LogEntry // newest first
	lookup  CatalogLookup
	params  Params
}

// signal is one independent scorer.
type signal struct {
	reason Reason
	score  func(in signalInput) []Suggestion
}

var signals = []signal{
	{reason: ReasonTextMatch, score: scoreTextMatch},
	{reason: ReasonTimeOfDay, score: scoreTimeOfDay},
	{reason: ReasonDayOfWeek, score: scoreDayOfWeek},
	{reason: ReasonRecentlyUsed, score: scoreRecency},
	{reason: ReasonFrequentlyUsed, score: scoreFrequency},
}

// matchConfidence scores how well name (lower-cased) answers input
// (lower-cased) and adds a usage boost for names logged often.
func matchConfidence(input, name string, occurrences int) float64 {
	var base float64
	switch {
	case name == input:
		base = textExactBase
	case strings.HasPrefix(name, input):
		base = textPrefixBase
	case strings.Contains(name, input):
		base = textContainsBase
	default:
		base = textFuzzyWeight * typo.Similarity(input, name)
	}

	usageBoost := math.Min(float64(occurrences)/textUsageDivisor, textUsageBoostCap)
	return math.Min(base+usageBoost, 1.0)
}

// scoreTextMatch suggests names containing the typed input. With fuzzy
// matching enabled, names within the similarity floor are admitted too.
func scoreTextMatch(in signalInput) []Suggestion {
	if in.input == "" {
		return nil
	}

	groups := aggregate(in.history, func(e event.LogEntry) bool {
		name := strings.ToLower(e.Name)
		if strings.Contains(name, in.input) {
			return true
		}
		return in.params.FuzzyMatch && typo.Similarity(in.input, name) >= in.params.FuzzyMinSimilarity
	})

	out := make([]Suggestion, 0, len(groups))
	for _, g := range groups {
		exercise, ok := in.lookup.Resolve(g.name)
		if !ok {
			continue
		}
		avgDuration, ok := g.avgDuration()
		if !ok {
			continue
		}
		avgCalories, _ := g.avgCalories()

		out = append(out, Suggestion{
			Exercise:               exercise,
			Confidence:             matchConfidence(in.input, strings.ToLower(g.name), g.count),
			Reason:                 ReasonTextMatch,
			TypicalDurationMinutes: intPtr(avgDuration),
			TypicalCalories:        intPtr(avgCalories),
			LastPerformed:          timePtr(g.last),
		})
	}
	return out
}

// scoreTimeOfDay suggests names the user habitually logs near this hour.
// The window is a plain hour difference without wraparound at midnight.
func scoreTimeOfDay(in signalInput) []Suggestion {
	hour := in.at.Hour()
	groups := aggregate(in.history, func(e event.LogEntry) bool {
		diff := e.Timestamp.In(in.at.Location()).Hour() - hour
		if diff < 0 {
			diff = -diff
		}
		return diff <= in.params.TimeWindowHours
	})
	return patternSuggestions(in, groups, ReasonTimeOfDay, timeOfDaySaturation, timeOfDayCeiling)
}

// scoreDayOfWeek suggests names the user habitually logs on this weekday.
func scoreDayOfWeek(in signalInput) []Suggestion {
	weekday := in.at.Weekday()
	groups := aggregate(in.history, func(e event.LogEntry) bool {
		return e.Timestamp.In(in.at.Location()).Weekday() == weekday
	})
	return patternSuggestions(in, groups, ReasonDayOfWeek, dayOfWeekSaturation, dayOfWeekCeiling)
}

// patternSuggestions scores windowed groups that meet the occurrence threshold.
func patternSuggestions(in signalInput, groups []*nameStats, reason Reason, saturation, ceiling float64) []Suggestion {
	var out []Suggestion
	for _, g := range groups {
		if g.count < in.params.MinPatternOccurrences {
			continue
		}
		exercise, ok := in.lookup.Resolve(g.name)
		if !ok {
			continue
		}
		avgDuration, ok := g.avgDuration()
		if !ok {
			continue
		}

		raw := math.Min(float64(g.count)/saturation, 1.0)
		out = append(out, Suggestion{
			Exercise:               exercise,
			Confidence:             math.Min(raw*ceiling, ceiling),
			Reason:                 reason,
			TypicalDurationMinutes: intPtr(avgDuration),
			LastPerformed:          timePtr(g.last),
		})
	}
	return out
}

// scoreRecency suggests names from the newest entries, decaying linearly
// with whole days since the name was last logged.
func scoreRecency(in signalInput) []Suggestion {
	window := in.history
	if len(window) > in.params.RecencyWindow {
		window = window[:in.params.RecencyWindow]
	}

	type lastSeen struct {
		name     string
		at       time.Time
		duration int
	}
	seen := make(map[string]bool)
	var firsts []lastSeen
	for _, e := range window {
		if !e.Valid() || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		firsts = append(firsts, lastSeen{name: e.Name, at: e.Timestamp, duration: e.DurationMinutes})
	}

	out := make([]Suggestion, 0, len(firsts))
	for _, f := range firsts {
		exercise, ok := in.lookup.Resolve(f.name)
		if !ok {
			continue
		}
		score := recencyScore(in.at, f.at, in.params.RecencyDecayDays)
		out = append(out, Suggestion{
			Exercise:               exercise,
			Confidence:             score * recencyCeiling,
			Reason:                 ReasonRecentlyUsed,
			TypicalDurationMinutes: intPtr(f.duration),
			LastPerformed:          timePtr(f.at),
		})
	}
	return out
}

// recencyScore is 1 - wholeDays/decayDays floored at 0. Entries after the
// reference instant count as zero days old.
func recencyScore(ref, last time.Time, decayDays float64) float64 {
	days := int(ref.Sub(last) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return math.Max(0, 1-float64(days)/decayDays)
}

// scoreFrequency suggests the most-logged names across the whole snapshot.
func scoreFrequency(in signalInput) []Suggestion {
	groups := aggregate(in.history, nil)

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		if !groups[i].last.Equal(groups[j].last) {
			return groups[i].last.After(groups[j].last)
		}
		return groups[i].name < groups[j].name
	})
	if len(groups) > in.params.FrequencyTopN {
		groups = groups[:in.params.FrequencyTopN]
	}

	out := make([]Suggestion, 0, len(groups))
	for _, g := range groups {
		exercise, ok := in.lookup.Resolve(g.name)
		if !ok {
			continue
		}
		avgDuration, ok := g.avgDuration()
		if !ok {
			continue
		}

		score := math.Min(float64(g.count)/frequencySaturation, 1.0)
		out = append(out, Suggestion{
			Exercise:               exercise,
			Confidence:             score * frequencyCeiling,
			Reason:                 ReasonFrequentlyUsed,
			TypicalDurationMinutes: intPtr(avgDuration),
			LastPerformed:          timePtr(g.last),
		})
	}
	return out
}
