package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/fitcue/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set fitcue configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/fitcue/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: storage, log, suggestions, catalog, server, picker

Examples:
  fitcue config                              # List all keys
  fitcue config suggestions.max_results      # Get a value
  fitcue config suggestions.fuzzy_match true # Admit near-miss names
  fitcue config catalog.path ~/gym.yaml      # Add custom exercises`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	applyColorMode()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	file := configPath
	if file == "" {
		file = config.DefaultPaths().ConfigFile()
	}

	switch len(args) {
	case 0:
		return listConfig(cmd, cfg, file)
	case 1:
		return getConfig(cmd, cfg, args[0])
	default:
		return setConfig(cmd, cfg, file, args[0], args[1])
	}
}

func listConfig(cmd *cobra.Command, cfg *config.Config, file string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleBold.Render("Configuration Keys"))
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintln(out)

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}
		if value == "" {
			value = styleDim.Render("(not set)")
		}
		fmt.Fprintf(out, "  %s = %s\n", styleCyan.Render(key), value)
	}

	if len(failedKeys) > 0 {
		fmt.Fprintf(out, "\n%s Failed to retrieve keys: %s\n", styleYellow.Render("Warning:"), strings.Join(failedKeys, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", file)
	return nil
}

func getConfig(cmd *cobra.Command, cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	if value == "" {
		value = styleDim.Render("(not set)")
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func setConfig(cmd *cobra.Command, cfg *config.Config, file, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if configPath == "" {
		if err := config.DefaultPaths().EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}
	if err := cfg.SaveToFile(file); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s = %s\n", styleCyan.Render(key), value)
	fmt.Fprintf(out, "Saved to: %s\n", filepath.Clean(file))
	return nil
}
