package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/metrics"
)

const entryColumns = `entry_id, name, ts_unix_ms, duration_minutes, calories_burned, source`

// CreateEntry stores a new log entry. A missing ID is generated and a
// missing source defaults to manual; both are written back to e.
func (s *SQLiteStore) CreateEntry(ctx context.Context, e *event.LogEntry) error {
	if e == nil {
		return errors.New("entry cannot be nil")
	}
	if err := validateEntry(e); err != nil {
		return err
	}

	fillDefaults(e, event.SourceManual)
	e.Name = strings.TrimSpace(e.Name)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercise_entries (`+entryColumns+`, created_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Name,
		e.Timestamp.UnixMilli(),
		e.DurationMinutes,
		e.CaloriesBurned,
		string(e.Source),
		time.Now().UnixMilli(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%s at %s: %w", e.Name, e.Timestamp.Format(time.RFC3339), ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	metrics.RecordEntriesLogged(string(e.Source), 1)
	return nil
}

// GetEntry returns the entry with the given ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*event.LogEntry, error) {
	if id == "" {
		return nil, errors.New("entry_id is required")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM exercise_entries WHERE entry_id = ?
	`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &e, nil
}

// DeleteEntry removes the entry with the given ID.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("entry_id is required")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM exercise_entries WHERE entry_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// RecentEntries returns up to limit entries, newest first. A limit <= 0
// returns every entry.
func (s *SQLiteStore) RecentEntries(ctx context.Context, limit int) ([]event.LogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM exercise_entries ORDER BY ts_unix_ms DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(ctx, query, args...)
}

// EntriesByName returns up to limit entries whose name matches exactly,
// newest first.
func (s *SQLiteStore) EntriesByName(ctx context.Context, name string, limit int) ([]event.LogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM exercise_entries WHERE name = ? ORDER BY ts_unix_ms DESC, id DESC`
	args := []any{name}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(ctx, query, args...)
}

// CountEntries returns the number of stored entries.
func (s *SQLiteStore) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercise_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]event.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var out []event.LogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (event.LogEntry, error) {
	var (
		e      event.LogEntry
		tsMs   int64
		source string
	)
	if err := r.Scan(&e.ID, &e.Name, &tsMs, &e.DurationMinutes, &e.CaloriesBurned, &source); err != nil {
		return event.LogEntry{}, err
	}
	e.Timestamp = time.UnixMilli(tsMs).UTC()
	e.Source = event.Source(source)
	return e, nil
}

func validateEntry(e *event.LogEntry) error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name is required")
	}
	if e.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	if e.DurationMinutes < 0 {
		return errors.New("duration_minutes must be >= 0")
	}
	if !event.ValidCalories(e.CaloriesBurned) {
		return fmt.Errorf("calories_burned must be a number in [0, %d]", event.MaxCalories)
	}
	if e.Source != "" && !event.ValidSource(string(e.Source)) {
		return fmt.Errorf("invalid source %q", e.Source)
	}
	return nil
}

func fillDefaults(e *event.LogEntry, source event.Source) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Source == "" {
		e.Source = source
	}
}
