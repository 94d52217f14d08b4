package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var typicalCmd = &cobra.Command{
	Use:     "typical <exercise>",
	Short:   "Show the typical duration of an exercise",
	GroupID: groupCore,
	Long: `Average the durations of your most recent sessions of an exercise.

The name must match the log exactly (case-sensitive).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTypical,
}

func init() {
	rootCmd.AddCommand(typicalCmd)
}

func runTypical(cmd *cobra.Command, args []string) error {
	applyColorMode()
	name := strings.Join(args, " ")

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	window := a.engine.Config().TypicalDurationWindow
	past, err := a.store.EntriesByName(cmd.Context(), name, window)
	if err != nil {
		return fmt.Errorf("failed to read exercise log: %w", err)
	}

	out := cmd.OutOrStdout()
	minutes, ok := a.engine.TypicalDuration(name, past)
	if !ok {
		fmt.Fprintf(out, "%s\n", styleDim.Render(fmt.Sprintf("No %q sessions logged yet.", name)))
		return nil
	}
	fmt.Fprintf(out, "%s: %d min %s\n",
		styleBold.Render(name),
		minutes,
		styleDim.Render(fmt.Sprintf("(last %d sessions)", min(len(past), window))),
	)
	return nil
}
