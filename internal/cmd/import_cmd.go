package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/history"
	logpkg "github.com/runger/fitcue/internal/suggestions/log"
	"github.com/runger/fitcue/internal/suggestions/metrics"
)

var (
	importFormat string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Import workouts from a CSV or JSON-lines file",
	GroupID: groupLog,
	Long: `Import past workouts into the exercise log.

CSV rows are timestamp,name,duration_minutes,calories with an optional
header row; the last two columns may be empty. JSON-lines files hold one
entry per line, as written by ` + "`fitcue history --format jsonl`" + `.

Rows that cannot be parsed are skipped and reported. Workouts already in
the log (same name and time) are not imported twice.

Examples:
  fitcue import workouts.csv
  fitcue import export.jsonl --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "input format: csv or jsonl (default: from extension)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	applyColorMode()
	path := args[0]

	parsed, err := history.ImportFile(path, importFormat, time.Local)
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	for _, skipped := range parsed.Skipped {
		logpkg.LogRowSkipped(a.logger, skipped.Line, skipped.Err)
	}
	metrics.Global.ImportErrors.Add(int64(len(parsed.Skipped)))

	out := cmd.OutOrStdout()
	for _, skipped := range parsed.Skipped {
		fmt.Fprintf(out, "%s %s\n", styleYellow.Render("skipped"), skipped.Error())
	}

	if parsed.Truncated > 0 {
		a.logger.Warn("import truncated", "path", path, "dropped", parsed.Truncated, "limit", history.MaxImportEntries)
		fmt.Fprintf(out, "%s %d oldest rows dropped, files are limited to %d entries\n",
			styleYellow.Render("truncated"), parsed.Truncated, history.MaxImportEntries)
	}

	if importDryRun {
		fmt.Fprintf(out, "%d entries parsed, %d rows skipped, %d dropped (dry run)\n",
			len(parsed.Entries), len(parsed.Skipped), parsed.Truncated)
		return nil
	}

	res, err := a.store.ImportEntries(cmd.Context(), parsed.Entries)
	if err != nil {
		logpkg.LogSQLiteError(a.logger, "import", err)
		return err
	}
	metrics.Global.ImportRows.Add(int64(res.Imported))
	logpkg.LogImport(a.logger, path, res.Imported, len(parsed.Skipped)+res.Invalid)

	fmt.Fprintf(out, "%s %d entries, %d already logged, %d rows skipped, %d dropped\n",
		styleGreen.Render("Imported"),
		res.Imported,
		res.Duplicates,
		len(parsed.Skipped)+res.Invalid,
		parsed.Truncated,
	)
	return nil
}
