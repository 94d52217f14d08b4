package suggest

import (
	"github.com/runger/fitcue/internal/suggestions/event"
)

// TypicalDuration returns the average duration in minutes over the most
// recent DefaultTypicalDurationWindow entries whose name equals name
// exactly. history must be ordered newest first. It returns false when no
// entry matches.
func TypicalDuration(name string, history []event.LogEntry) (int, bool) {
	return typicalDuration(name, history, DefaultTypicalDurationWindow)
}

func typicalDuration(name string, history []event.LogEntry, window int) (int, bool) {
	if name == "" || window <= 0 {
		return 0, false
	}

	total, count := 0, 0
	for _, e := range history {
		if count == window {
			break
		}
		if e.Name != name || e.Timestamp.IsZero() {
			continue
		}
		total += e.DurationMinutes
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total / count, true
}
