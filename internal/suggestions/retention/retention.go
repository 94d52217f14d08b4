// Package retention prunes old workouts from the exercise log.
package retention

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const (
	// MinRetentionDays is the shortest retention period accepted.
	MinRetentionDays = 1

	// MaxRetentionDays is the longest retention period accepted (10 years).
	MaxRetentionDays = 3650

	// VacuumThreshold is the number of deleted rows that triggers a vacuum.
	VacuumThreshold = 10000
)

// Policy defines how long logged workouts are kept.
type Policy struct {
	Logger        *slog.Logger
	RetentionDays int
	AutoVacuum    bool
}

// Purger deletes exercise entries older than the policy allows.
type Purger struct {
	db     *sql.DB
	policy Policy
}

// NewPurger creates a purger over the exercise log database. RetentionDays
// is clamped to [MinRetentionDays, MaxRetentionDays].
func NewPurger(db *sql.DB, policy Policy) *Purger {
	policy.RetentionDays = min(max(policy.RetentionDays, MinRetentionDays), MaxRetentionDays)
	if policy.Logger == nil {
		policy.Logger = slog.Default()
	}
	return &Purger{db: db, policy: policy}
}

// RetentionDays returns the effective retention period.
func (p *Purger) RetentionDays() int {
	return p.policy.RetentionDays
}

// Cutoff returns the instant before which entries are purged.
func (p *Purger) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(p.policy.RetentionDays) * 24 * time.Hour)
}

// PurgeResult contains the results of a purge.
type PurgeResult struct {
	Cutoff   time.Time
	Deleted  int64
	Vacuumed bool
	Duration time.Duration
}

// Purge deletes entries logged before Cutoff(now).
func (p *Purger) Purge(ctx context.Context, now time.Time) (*PurgeResult, error) {
	start := time.Now()
	result := &PurgeResult{Cutoff: p.Cutoff(now)}

	p.policy.Logger.Debug("starting purge",
		"retention_days", p.policy.RetentionDays,
		"cutoff", result.Cutoff,
	)

	res, err := p.db.ExecContext(ctx,
		`DELETE FROM exercise_entries WHERE ts_unix_ms < ?`, result.Cutoff.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to purge entries: %w", err)
	}
	result.Deleted, err = res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to purge entries: %w", err)
	}

	if p.policy.AutoVacuum && result.Deleted >= VacuumThreshold {
		p.policy.Logger.Debug("running vacuum after large purge", "deleted", result.Deleted)
		// A failed vacuum leaves the purge intact.
		if _, err := p.db.ExecContext(ctx, "VACUUM"); err != nil {
			p.policy.Logger.Warn("vacuum failed", "error", err)
		} else {
			result.Vacuumed = true
		}
	}

	result.Duration = time.Since(start)
	p.policy.Logger.Info("purge completed",
		"deleted", result.Deleted,
		"vacuumed", result.Vacuumed,
		"duration", result.Duration,
	)
	return result, nil
}

// CountPurgeable returns how many entries Purge(ctx, now) would delete.
func (p *Purger) CountPurgeable(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_entries WHERE ts_unix_ms < ?`, p.Cutoff(now).UnixMilli(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}
