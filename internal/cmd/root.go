// Package cmd implements the fitcue command line.
package cmd

import (
	"github.com/spf13/cobra"
)

const (
	groupCore  = "core"
	groupLog   = "log"
	groupSetup = "setup"
)

// configPath overrides the default config file location when set.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "fitcue",
	Short: "exercise suggestions from your own training log",
	Long: `fitcue - exercise suggestions from your own training log
  - type a few letters, get the exercise you meant
  - at your usual time and day, get what you usually do
  - log workouts and import old ones from CSV`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Suggestions:"},
		&cobra.Group{ID: groupLog, Title: "Exercise log:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fitcue/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
}
