package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/picker"
)

var pickLog bool

// errPickCancelled is returned when the user quits the picker.
var errPickCancelled = errors.New("cancelled")

var pickCmd = &cobra.Command{
	Use:     "pick [query]",
	Short:   "Pick an exercise interactively",
	GroupID: groupCore,
	Long: `Open an interactive picker. Typing re-ranks suggestions; Tab switches
between your suggestions and the full catalog; Enter prints the chosen
exercise (or logs it with --log).

The picker draws on /dev/tty so it works inside $(...):
  fitcue log "$(fitcue pick)" --duration 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickLog, "log", false, "log the chosen exercise now with its typical duration")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	tabs := []picker.TabDef{
		{ID: "suggested", Label: "Suggested", Provider: picker.NewSuggestProvider(a.engine, a.store, now)},
		{ID: "catalog", Label: "Catalog", Provider: picker.NewCatalogProvider(a.catalog)},
	}
	debounce := time.Duration(a.cfg.Picker.DebounceMs) * time.Millisecond
	model := picker.NewModel(tabs, query, debounce)

	// stdout may be a pipe; draw on the terminal itself.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("cannot open /dev/tty: %w", err)
	}
	defer tty.Close()

	// Package-level picker styles use the default renderer, so detect the
	// profile from the tty rather than stdout.
	if colorMode == "never" || shouldDisableColors() {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
		tea.WithContext(cmd.Context()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	m, ok := final.(picker.Model)
	if !ok {
		return errors.New("picker: unexpected model type")
	}
	if m.Cancelled() {
		return errPickCancelled
	}
	choice := strings.TrimSpace(m.Result())
	if choice == "" {
		return errPickCancelled
	}

	if !pickLog {
		fmt.Fprintln(cmd.OutOrStdout(), choice)
		return nil
	}

	entry, err := a.logEntry(cmd, choice, now(), -1, -1)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s, %d min\n", styleGreen.Render("Logged"), entry.Name, entry.DurationMinutes)
	return nil
}
