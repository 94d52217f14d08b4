package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/storage"
	"github.com/runger/fitcue/internal/suggestions/event"
	logpkg "github.com/runger/fitcue/internal/suggestions/log"
	"github.com/runger/fitcue/internal/suggestions/retention"
)

var (
	historyLimit  int
	historyName   string
	historyFormat string

	pruneOlderThan int
	pruneDryRun    bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show logged workouts",
	GroupID: groupLog,
	Long: `Show the most recent workouts, newest first.

--format jsonl writes one entry per line and can be re-imported with
` + "`fitcue import`" + `.

Examples:
  fitcue history
  fitcue history --name Running -n 5
  fitcue history --limit 0 --format jsonl > backup.jsonl`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete logged workouts by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryRm,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete workouts older than a number of days",
	Long: `Delete workouts logged more than --older-than days ago.

Examples:
  fitcue history prune --older-than 730 --dry-run
  fitcue history prune --older-than 365`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func init() {
	historyPruneCmd.Flags().IntVar(&pruneOlderThan, "older-than", 365, "retention period in days")
	historyPruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "count without deleting")
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show (0 = all)")
	historyCmd.Flags().StringVar(&historyName, "name", "", "only entries with this exact name")
	historyCmd.Flags().StringVar(&historyFormat, "format", "text", "output format: text, json or jsonl")
	historyCmd.AddCommand(historyRmCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	applyColorMode()

	switch historyFormat {
	case "text", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --format %q (must be text, json or jsonl)", historyFormat)
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	var entries []event.LogEntry
	if historyName != "" {
		entries, err = a.store.EntriesByName(cmd.Context(), historyName, historyLimit)
	} else {
		entries, err = a.store.RecentEntries(cmd.Context(), historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to read exercise log: %w", err)
	}

	out := cmd.OutOrStdout()
	switch historyFormat {
	case "json":
		if entries == nil {
			entries = []event.LogEntry{}
		}
		return writeJSON(out, entries)
	case "jsonl":
		enc := json.NewEncoder(out)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, styleDim.Render("No workouts logged yet."))
		return nil
	}
	writeHistoryText(out, entries)
	return nil
}

func writeHistoryText(w io.Writer, entries []event.LogEntry) {
	col := 8
	for _, e := range entries {
		col = max(col, runewidth.StringWidth(e.Name))
	}
	col = min(col, max(termWidth()-50, 12))

	for _, e := range entries {
		name := runewidth.FillRight(runewidth.Truncate(e.Name, col, "…"), col)
		fmt.Fprintf(w, "%s  %s  %4d min  %6.0f kcal  %s\n",
			styleDim.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			styleBold.Render(name),
			e.DurationMinutes,
			e.CaloriesBurned,
			styleDim.Render(e.ID),
		)
	}
}

func runHistoryRm(cmd *cobra.Command, args []string) error {
	applyColorMode()

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	var errs []error
	for _, id := range args {
		if err := a.store.DeleteEntry(cmd.Context(), id); err != nil {
			if errors.Is(err, storage.ErrEntryNotFound) {
				err = fmt.Errorf("%s: %w", id, err)
			}
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", styleRed.Render("Deleted"), id)
	}
	return errors.Join(errs...)
}

func runHistoryPrune(cmd *cobra.Command, _ []string) error {
	applyColorMode()

	if pruneOlderThan < retention.MinRetentionDays || pruneOlderThan > retention.MaxRetentionDays {
		return fmt.Errorf("--older-than must be between %d and %d days", retention.MinRetentionDays, retention.MaxRetentionDays)
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	p := retention.NewPurger(a.store.DB(), retention.Policy{
		Logger:        a.logger,
		RetentionDays: pruneOlderThan,
		AutoVacuum:    true,
	})
	ref := now()
	cutoff := p.Cutoff(ref).Local().Format("2006-01-02 15:04")
	out := cmd.OutOrStdout()

	if pruneDryRun {
		n, err := p.CountPurgeable(cmd.Context(), ref)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d entries logged before %s would be deleted (dry run)\n", n, cutoff)
		return nil
	}

	res, err := p.Purge(cmd.Context(), ref)
	if err != nil {
		logpkg.LogSQLiteError(a.logger, "prune", err)
		return err
	}
	fmt.Fprintf(out, "%s %d entries logged before %s\n", styleRed.Render("Deleted"), res.Deleted, cutoff)
	return nil
}
