// Package storage provides SQLite-based persistent storage for the exercise
// log. It is the history source the suggestion engine reads snapshots from.
package storage

import (
	"context"
	"errors"

	"github.com/runger/fitcue/internal/suggestions/event"
)

var (
	// ErrEntryNotFound is returned when an entry ID does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDuplicateEntry is returned when an entry with the same name and
	// timestamp is already logged.
	ErrDuplicateEntry = errors.New("entry already logged")
)

// Store defines the interface for all storage operations.
type Store interface {
	// Entries
	CreateEntry(ctx context.Context, e *event.LogEntry) error
	GetEntry(ctx context.Context, id string) (*event.LogEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	RecentEntries(ctx context.Context, limit int) ([]event.LogEntry, error)
	EntriesByName(ctx context.Context, name string, limit int) ([]event.LogEntry, error)
	CountEntries(ctx context.Context) (int, error)

	// Import
	ImportEntries(ctx context.Context, entries []event.LogEntry) (ImportResult, error)

	// Lifecycle
	Close() error
}

// ImportResult reports what an import did.
type ImportResult struct {
	Imported   int // rows inserted
	Duplicates int // rows already present
	Invalid    int // rows failing validation
}

var _ Store = (*SQLiteStore)(nil)
