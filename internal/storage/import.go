package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
	"github.com/runger/fitcue/internal/suggestions/metrics"
)

// ImportEntries inserts entries in a single transaction. Entries that fail
// validation are counted as invalid; entries already logged (same name and
// timestamp) are counted as duplicates. Either way the import continues.
// Entries without a source are tagged as imported.
func (s *SQLiteStore) ImportEntries(ctx context.Context, entries []event.LogEntry) (ImportResult, error) {
	var res ImportResult
	if len(entries) == 0 {
		return res, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO exercise_entries (`+entryColumns+`, created_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return res, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	perSource := make(map[event.Source]int)
	for _, entry := range entries {
		e := entry
		if err := validateEntry(&e); err != nil {
			res.Invalid++
			continue
		}
		fillDefaults(&e, event.SourceImport)

		result, err := stmt.ExecContext(ctx,
			e.ID,
			strings.TrimSpace(e.Name),
			e.Timestamp.UnixMilli(),
			e.DurationMinutes,
			e.CaloriesBurned,
			string(e.Source),
			now,
		)
		if err != nil {
			return ImportResult{}, fmt.Errorf("failed to insert entry: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return ImportResult{}, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			res.Duplicates++
			continue
		}
		res.Imported++
		perSource[e.Source]++
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for source, n := range perSource {
		metrics.RecordEntriesLogged(string(source), n)
	}
	return res, nil
}
