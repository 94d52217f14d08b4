package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/fitcue/internal/suggestions/event"
)

func TestNameStats_EmptyGuardsDivision(t *testing.T) {
	t.Parallel()

	s := &nameStats{name: "Running"}
	_, ok := s.avgDuration()
	assert.False(t, ok)
	_, ok = s.avgCalories()
	assert.False(t, ok)
}

func TestNameStats_Averages(t *testing.T) {
	t.Parallel()

	s := &nameStats{name: "Running"}
	s.add(entry("Running", daysAgo(3), 20, 200.9))
	s.add(entry("Running", daysAgo(1), 31, 300))
	s.add(entry("Running", daysAgo(2), 25, 250))

	d, ok := s.avgDuration()
	require.True(t, ok)
	assert.Equal(t, 25, d) // 76/3 truncated

	c, ok := s.avgCalories()
	require.True(t, ok)
	assert.Equal(t, 250, c)

	assert.Equal(t, daysAgo(1), s.last)
	assert.Equal(t, 31, s.lastDuration)
}

func TestAggregate_GroupsByExactName(t *testing.T) {
	t.Parallel()

	history := []event.LogEntry{
		entry("Yoga", daysAgo(1), 30, 0),
		entry("Running", daysAgo(1), 30, 0),
		entry("running", daysAgo(2), 30, 0),
		entry("Running", daysAgo(3), 30, 0),
	}

	groups := aggregate(history, nil)
	require.Len(t, groups, 3)
	assert.Equal(t, "Running", groups[0].name)
	assert.Equal(t, 2, groups[0].count)
	assert.Equal(t, "Yoga", groups[1].name)
	assert.Equal(t, "running", groups[2].name)
}

func TestAggregate_SkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	history := []event.LogEntry{
		entry("", daysAgo(1), 30, 0),
		entry("   ", daysAgo(1), 30, 0),
		entry("Running", time.Time{}, 30, 0),
		entry("Running", daysAgo(1), 30, 0),
	}

	groups := aggregate(history, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].count)
}

func TestAggregate_KeepFilter(t *testing.T) {
	t.Parallel()

	history := []event.LogEntry{
		entry("Running", daysAgo(1), 30, 0),
		entry("Yoga", daysAgo(2), 60, 0),
	}

	groups := aggregate(history, func(e event.LogEntry) bool {
		return e.DurationMinutes > 45
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "Yoga", groups[0].name)
}
