package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/catalog"
	"github.com/runger/fitcue/internal/config"
	"github.com/runger/fitcue/internal/suggestions/typo"
)

var catalogFormat string

var nameCorrector = typo.NewCorrector(typo.DefaultCorrectorConfig())

var catalogCmd = &cobra.Command{
	Use:     "catalog [query]",
	Short:   "Search the exercise catalog",
	GroupID: groupCore,
	Long: `List catalog exercises whose name contains the query, or the whole
catalog when no query is given. Names starting with the query come first.

The built-in catalog can be extended with a YAML overlay (catalog.path or
$XDG_CONFIG_HOME/fitcue/catalog.yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <exercise>",
	Short: "Show one catalog entry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogFormat, "format", "text", "output format: text or json")
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

// loadCatalog loads the catalog without opening the exercise log.
func loadCatalog() (*catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return catalog.Load(resolveCatalogPath(cfg, config.DefaultPaths()))
}

func runCatalog(cmd *cobra.Command, args []string) error {
	applyColorMode()

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	var entries []catalog.Entry
	if len(args) == 0 {
		entries = c.Entries()
	} else {
		entries = c.Search(args[0])
	}

	out := cmd.OutOrStdout()
	if catalogFormat == "json" {
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, styleDim.Render("No matching exercises."))
		return nil
	}
	writeCatalogText(out, entries)
	return nil
}

func writeCatalogText(w io.Writer, entries []catalog.Entry) {
	col := 8
	for _, e := range entries {
		col = max(col, runewidth.StringWidth(e.Name))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s  %s\n",
			styleBold.Render(runewidth.FillRight(e.Name, col)),
			styleCyan.Render(fmt.Sprintf("%-12s", e.Type)),
			styleDim.Render(fmt.Sprintf("%-10s %4.1f kcal/min", e.Category, e.CaloriesPerMinute)),
		)
	}
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	applyColorMode()

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	e, ok := c.Resolve(name)
	if !ok {
		if hint := didYouMean(c, name); hint != "" {
			return fmt.Errorf("%q: %w; %s", name, catalog.ErrUnknownExercise, hint)
		}
		return fmt.Errorf("%q: %w", name, catalog.ErrUnknownExercise)
	}

	out := cmd.OutOrStdout()
	if catalogFormat == "json" {
		return writeJSON(out, e)
	}
	fmt.Fprintf(out, "%s\n", styleBold.Render(e.Name))
	fmt.Fprintf(out, "  type:     %s\n", e.Type)
	fmt.Fprintf(out, "  category: %s\n", e.Category)
	fmt.Fprintf(out, "  calories: %.1f kcal/min (%.0f kcal per 30 min)\n", e.CaloriesPerMinute, e.CaloriesPerMinute*30)
	return nil
}

// didYouMean names the catalog entries closest to name, or returns "" when
// none is similar enough.
func didYouMean(c *catalog.Catalog, name string) string {
	corrections := nameCorrector.Correct(name, c.Names())
	if len(corrections) == 0 {
		return ""
	}
	quoted := make([]string, len(corrections))
	for i, corr := range corrections {
		quoted[i] = strconv.Quote(corr.Suggested)
	}
	return "did you mean " + strings.Join(quoted, " or ") + "?"
}
