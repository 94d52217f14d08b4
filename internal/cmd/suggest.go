package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/suggestions/suggest"
)

var (
	suggestLimit   int
	suggestFormat  string
	suggestAt      string
	suggestExplain bool
)

var suggestCmd = &cobra.Command{
	Use:     "suggest [input]",
	Short:   "Suggest exercises from your log",
	GroupID: groupCore,
	Long: `Rank up to --limit exercise suggestions for the typed input.

Suggestions combine five signals: name match on the input, exercises you
usually do at this time of day, on this weekday, recently, and most often.

Examples:
  fitcue suggest              # what to do now
  fitcue suggest yo           # complete "yo" to Yoga
  fitcue suggest --at "2026-03-02 07:00" --explain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "maximum number of suggestions (default from config)")
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "text", "output format: text or json")
	suggestCmd.Flags().StringVar(&suggestAt, "at", "", "reference time (RFC 3339 or \"YYYY-MM-DD HH:MM\"), default now")
	suggestCmd.Flags().BoolVar(&suggestExplain, "explain", false, "show the candidates each signal produced")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	applyColorMode()

	if suggestFormat != "text" && suggestFormat != "json" {
		return fmt.Errorf("invalid --format %q (must be text or json)", suggestFormat)
	}
	at, err := parseAt(suggestAt)
	if err != nil {
		return err
	}
	input := ""
	if len(args) > 0 {
		input = args[0]
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	history, err := a.store.RecentEntries(ctx, a.engine.Config().HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to read exercise log: %w", err)
	}
	req := suggest.Request{Input: input, At: at, History: history, MaxResults: suggestLimit}
	out := cmd.OutOrStdout()

	if suggestExplain {
		ranking, err := a.engine.Explain(ctx, req)
		if err != nil {
			return err
		}
		if suggestFormat == "json" {
			return writeJSON(out, ranking)
		}
		writeSuggestionsText(out, ranking.Suggestions, at)
		writeExplainText(out, ranking)
		return nil
	}

	suggestions, err := a.engine.Suggest(ctx, req)
	if err != nil {
		return err
	}
	if suggestFormat == "json" {
		if suggestions == nil {
			suggestions = []suggest.Suggestion{}
		}
		return writeJSON(out, suggestions)
	}
	writeSuggestionsText(out, suggestions, at)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nameColumn is the display width reserved for exercise names.
func nameColumn(suggestions []suggest.Suggestion) int {
	width := 8
	for _, s := range suggestions {
		width = max(width, runewidth.StringWidth(s.Exercise.Name))
	}
	return min(width, max(termWidth()-40, 12))
}

func writeSuggestionsText(w io.Writer, suggestions []suggest.Suggestion, at time.Time) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, styleDim.Render("No suggestions yet. Log a workout with `fitcue log <exercise>`."))
		return
	}

	col := nameColumn(suggestions)
	for i, s := range suggestions {
		name := runewidth.FillRight(runewidth.Truncate(s.Exercise.Name, col, "…"), col)
		line := fmt.Sprintf("%2d. %s  %s %3.0f%%",
			i+1,
			styleBold.Render(name),
			styleCyan.Render(fmt.Sprintf("%-15s", s.Reason)),
			s.Confidence*100,
		)
		if s.TypicalDurationMinutes != nil {
			line += fmt.Sprintf("  ~%d min", *s.TypicalDurationMinutes)
		}
		if s.LastPerformed != nil {
			line += styleDim.Render("  last " + relativeDay(*s.LastPerformed, at))
		}
		fmt.Fprintln(w, line)
	}
}

func writeExplainText(w io.Writer, ranking suggest.Ranking) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleBold.Render("Signals"))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, sig := range ranking.Signals {
		fmt.Fprintf(w, "%s %s\n",
			styleCyan.Render(string(sig.Reason)),
			styleDim.Render(fmt.Sprintf("(%d candidates, %s)", len(sig.Candidates), sig.Elapsed.Round(time.Microsecond))),
		)
		for _, c := range sig.Candidates {
			fmt.Fprintf(w, "    %-24s %.2f\n", c.Exercise.Name, c.Confidence)
		}
	}
}

// relativeDay renders t relative to ref in whole days.
func relativeDay(t, ref time.Time) string {
	days := int(ref.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
