package suggest

import (
	"time"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/suggestions/event"
)

// refTime is the reference instant used across tests: a Wednesday evening.
var refTime = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

func entry(name string, at time.Time, minutes int, calories float64) event.LogEntry {
	return event.LogEntry{
		Name:            name,
		Timestamp:       at,
		DurationMinutes: minutes,
		CaloriesBurned:  calories,
	}
}

func daysAgo(n int) time.Time {
	return refTime.Add(-time.Duration(n) * 24 * time.Hour)
}

func repeat(name string, n int, start time.Time, step time.Duration, minutes int) []event.LogEntry {
	out := make([]event.LogEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entry(name, start.Add(-time.Duration(i)*step), minutes, 0))
	}
	return out
}

func testCatalog() *catalog.Catalog {
	return catalog.Builtin()
}

func testInput(input string, history []event.LogEntry) signalInput {
	return newSignalInput(input, refTime, history, testCatalog(), DefaultParams())
}

func byName(list []Suggestion) map[string]Suggestion {
	out := make(map[string]Suggestion, len(list))
	for _, s := range list {
		out[s.Exercise.Name] = s
	}
	return out
}
