package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_AllEntriesValid(t *testing.T) {
	t.Parallel()

	c := Builtin()
	require.Equal(t, len(builtinEntries), c.Len())
	for _, e := range c.Entries() {
		assert.NoError(t, e.Validate(), e.Name)
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	t.Parallel()

	c := Builtin()

	for _, name := range []string{"Running", "running", "RUNNING", "  running "} {
		e, ok := c.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, "Running", e.Name)
		assert.Equal(t, TypeCardio, e.Type)
		assert.Equal(t, 10.0, e.CaloriesPerMinute)
	}

	_, ok := c.Resolve("Underwater Basket Weaving")
	assert.False(t, ok)

	_, ok = c.Resolve("Run")
	assert.False(t, ok, "resolution is exact, not prefix")
}

func TestNew_LaterEntryWins(t *testing.T) {
	t.Parallel()

	c := New([]Entry{
		{Name: "Yoga", Type: TypeFlexibility, CaloriesPerMinute: 3},
		{Name: "Rowing", Type: TypeCardio, CaloriesPerMinute: 9},
		{Name: "yoga", Type: TypeFlexibility, CaloriesPerMinute: 4},
		{Name: "  ", Type: TypeOther},
	})

	assert.Equal(t, 2, c.Len())
	e, ok := c.Resolve("YOGA")
	require.True(t, ok)
	assert.Equal(t, 4.0, e.CaloriesPerMinute)
	assert.Equal(t, []string{"yoga", "Rowing"}, c.Names())
}

func TestWithOverlay(t *testing.T) {
	t.Parallel()

	base := Builtin()
	c := base.WithOverlay([]Entry{
		{Name: "running", Type: TypeCardio, CaloriesPerMinute: 11.5, Category: "Track"},
		{Name: "Kettlebell Swings", Type: TypeStrength, CaloriesPerMinute: 9, Category: "Home"},
	})

	assert.Equal(t, base.Len()+1, c.Len())

	e, ok := c.Resolve("Running")
	require.True(t, ok)
	assert.Equal(t, 11.5, e.CaloriesPerMinute)

	_, ok = c.Resolve("kettlebell swings")
	assert.True(t, ok)

	// Base is untouched.
	e, _ = base.Resolve("Running")
	assert.Equal(t, 10.0, e.CaloriesPerMinute)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c := Builtin()

	got := c.Search("ing")
	require.NotEmpty(t, got)
	for _, e := range got {
		assert.Contains(t, e.Name, "ing")
	}

	// Prefix matches sort ahead of inner matches.
	got = c.Search("ro")
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, "Rock Climbing", got[0].Name)
	assert.Equal(t, "Rowing Machine", got[1].Name)
	for _, e := range got[2:] {
		assert.NotEqual(t, "Rock Climbing", e.Name)
	}

	assert.Empty(t, c.Search(""))
	assert.Empty(t, c.Search("   "))
}

func TestEstimateCalories(t *testing.T) {
	t.Parallel()

	c := Builtin()

	kcal, err := c.EstimateCalories("swimming", 30)
	require.NoError(t, err)
	assert.Equal(t, 330.0, kcal)

	kcal, err = c.EstimateCalories("Yoga", 0)
	require.NoError(t, err)
	assert.Zero(t, kcal)

	_, err = c.EstimateCalories("Nope", 10)
	assert.True(t, errors.Is(err, ErrUnknownExercise))
}

func TestLoad_Overlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`exercises:
  - name: Kettlebell Swings
    type: strength
    calories_per_minute: 9
    category: Home
  - name: Running
    type: cardio
    calories_per_minute: 12
    category: Track
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	e, ok := c.Resolve("kettlebell swings")
	require.True(t, ok)
	assert.Equal(t, TypeStrength, e.Type)

	e, ok = c.Resolve("running")
	require.True(t, ok)
	assert.Equal(t, "Track", e.Category)
}

func TestLoad_EmptyPathIsBuiltin(t *testing.T) {
	t.Parallel()

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), c.Len())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("exercises:\n  - name: Foo\n    type: telepathy\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type")

	garbled := filepath.Join(dir, "garbled.yaml")
	require.NoError(t, os.WriteFile(garbled, []byte("exercises: [:"), 0o644))
	_, err = Load(garbled)
	assert.Error(t, err)
}
