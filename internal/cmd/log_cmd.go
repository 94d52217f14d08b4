package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/storage"
	"github.com/runger/fitcue/internal/suggestions/event"
)

var (
	logDuration int
	logCalories float64
	logAt       string
)

var logCmd = &cobra.Command{
	Use:     "log <exercise>",
	Short:   "Log a workout",
	GroupID: groupLog,
	Long: `Log a workout to the exercise log.

When --duration is omitted the typical duration of your recent sessions of
that exercise is used. When --calories is omitted they are estimated from
the catalog.

Examples:
  fitcue log Running --duration 30
  fitcue log "Rowing Machine" --at "2026-03-02 07:00"
  fitcue log Yoga --calories 150`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logDuration, "duration", "d", -1, "duration in minutes (default: typical duration)")
	logCmd.Flags().Float64VarP(&logCalories, "calories", "c", -1, "calories burned (default: catalog estimate)")
	logCmd.Flags().StringVar(&logAt, "at", "", "when the workout happened, default now")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	applyColorMode()

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errors.New("exercise name is required")
	}
	at, err := parseAt(logAt)
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.logEntry(cmd, name, at, logDuration, logCalories)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s, %d min, %.0f kcal %s\n",
		styleGreen.Render("Logged"),
		styleBold.Render(entry.Name),
		entry.DurationMinutes,
		entry.CaloriesBurned,
		styleDim.Render(entry.Timestamp.Format("2006-01-02 15:04")),
	)
	if _, ok := a.catalog.Resolve(entry.Name); !ok {
		if hint := didYouMean(a.catalog, entry.Name); hint != "" {
			fmt.Fprintf(out, "%s %q is not in the catalog; %s\n", styleYellow.Render("Note:"), entry.Name, hint)
		}
	}
	return nil
}

// logEntry stores one manual entry. Negative duration or calories mean
// "fill in": typical duration from the log, calories from the catalog.
func (a *app) logEntry(cmd *cobra.Command, name string, at time.Time, duration int, calories float64) (*event.LogEntry, error) {
	ctx := cmd.Context()

	// Prefer the catalog's spelling so history and catalog stay aligned.
	if e, ok := a.catalog.Resolve(name); ok {
		name = e.Name
	}

	if duration < 0 {
		duration = 0
		past, err := a.store.EntriesByName(ctx, name, a.engine.Config().TypicalDurationWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to read exercise log: %w", err)
		}
		if typical, ok := a.engine.TypicalDuration(name, past); ok {
			duration = typical
		}
	}

	if calories < 0 {
		calories = 0
		kcal, err := a.catalog.EstimateCalories(name, duration)
		switch {
		case err == nil:
			calories = kcal
		case errors.Is(err, catalog.ErrUnknownExercise):
			a.logger.Debug("no calorie estimate", "name", name)
		default:
			return nil, err
		}
	}

	entry := &event.LogEntry{
		Name:            name,
		Timestamp:       at,
		DurationMinutes: duration,
		CaloriesBurned:  calories,
		Source:          event.SourceManual,
	}
	if err := a.store.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrDuplicateEntry) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to log workout: %w", err)
	}
	a.logger.Info("entry logged", "id", entry.ID, "name", entry.Name, "duration_minutes", entry.DurationMinutes)
	return entry, nil
}
