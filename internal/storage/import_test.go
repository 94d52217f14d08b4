package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
)

func TestImportEntries_Basic(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	entries := []event.LogEntry{
		{Name: "Running", Timestamp: day0, DurationMinutes: 30},
		{Name: "Yoga", Timestamp: day0.Add(-24 * time.Hour), DurationMinutes: 60},
	}

	res, err := store.ImportEntries(ctx, entries)
	if err != nil {
		t.Fatalf("ImportEntries() error = %v", err)
	}
	if res.Imported != 2 || res.Duplicates != 0 || res.Invalid != 0 {
		t.Errorf("result = %+v", res)
	}

	got, err := store.RecentEntries(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Source != event.SourceImport {
			t.Errorf("%s source = %q, want import", e.Name, e.Source)
		}
		if e.ID == "" {
			t.Errorf("%s has no ID", e.Name)
		}
	}
}

func TestImportEntries_Empty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()

	res, err := store.ImportEntries(context.Background(), nil)
	if err != nil {
		t.Fatalf("ImportEntries() error = %v", err)
	}
	if res != (ImportResult{}) {
		t.Errorf("result = %+v, want zero", res)
	}
}

func TestImportEntries_SkipsInvalid(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()

	entries := []event.LogEntry{
		{Name: "", Timestamp: day0},
		{Name: "Running"},
		{Name: "Cycling", Timestamp: day0, DurationMinutes: -3},
		{Name: "Hiking", Timestamp: day0},
	}

	res, err := store.ImportEntries(context.Background(), entries)
	if err != nil {
		t.Fatalf("ImportEntries() error = %v", err)
	}
	if res.Imported != 1 || res.Invalid != 3 {
		t.Errorf("result = %+v, want 1 imported 3 invalid", res)
	}
}

func TestImportEntries_RejectsNonFiniteCalories(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	entries := []event.LogEntry{
		{Name: "Running", Timestamp: day0, DurationMinutes: 30, CaloriesBurned: math.NaN()},
		{Name: "Yoga", Timestamp: day0, DurationMinutes: 30, CaloriesBurned: math.Inf(1)},
		{Name: "Rowing Machine", Timestamp: day0, DurationMinutes: 30, CaloriesBurned: 1e300},
		{Name: "Hiking", Timestamp: day0, DurationMinutes: 30, CaloriesBurned: 210},
	}

	res, err := store.ImportEntries(ctx, entries)
	if err != nil {
		t.Fatalf("ImportEntries() error = %v", err)
	}
	if res.Imported != 1 || res.Invalid != 3 || res.Duplicates != 0 {
		t.Errorf("result = %+v, want 1 imported 3 invalid 0 duplicates", res)
	}

	err = store.CreateEntry(ctx, &event.LogEntry{Name: "Yoga", Timestamp: day0, CaloriesBurned: math.Inf(1)})
	if err == nil {
		t.Error("CreateEntry() with +Inf calories should fail")
	}
}

func TestImportEntries_Idempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	entries := []event.LogEntry{
		{Name: "Running", Timestamp: day0},
		{Name: "Running", Timestamp: day0}, // duplicate within the batch
		{Name: "Boxing", Timestamp: day0},
	}

	first, err := store.ImportEntries(ctx, entries)
	if err != nil {
		t.Fatal(err)
	}
	if first.Imported != 2 || first.Duplicates != 1 {
		t.Errorf("first import = %+v", first)
	}

	second, err := store.ImportEntries(ctx, entries)
	if err != nil {
		t.Fatal(err)
	}
	if second.Imported != 0 || second.Duplicates != 3 {
		t.Errorf("second import = %+v", second)
	}

	n, err := store.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountEntries() = %d, want 2", n)
	}
}

func TestImportEntries_KeepsExplicitSource(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	_, err := store.ImportEntries(ctx, []event.LogEntry{{Name: "Swimming", Timestamp: day0, Source: event.SourceAPI}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.RecentEntries(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Source != event.SourceAPI {
		t.Errorf("got %+v", got)
	}
}
