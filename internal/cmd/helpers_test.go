package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the reference instant for CLI tests: Monday 2 March 2026, 07:30 local.
var fixedNow = time.Date(2026, 3, 2, 7, 30, 0, 0, time.Local)

// setupCLI points every fitcue path at a temp dir, freezes the clock and
// restores the flag globals afterwards.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{"FITCUE_DB_PATH", "FITCUE_LOG_LEVEL", "FITCUE_DEBUG", "FITCUE_CATALOG_PATH", "FITCUE_SERVER_ADDRESS"} {
		t.Setenv(k, "")
	}

	oldNow := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() {
		now = oldNow
		resetFlags()
	})
	resetFlags()
	return dir
}

// resetFlags restores flag globals to their registered defaults; cobra
// keeps parsed values between Execute calls.
func resetFlags() {
	configPath = ""
	colorMode = "never"

	suggestLimit = 0
	suggestFormat = "text"
	suggestAt = ""
	suggestExplain = false

	logDuration = -1
	logCalories = -1
	logAt = ""

	historyLimit = 20
	historyName = ""
	historyFormat = "text"
	pruneOlderThan = 365
	pruneDryRun = false

	catalogFormat = "text"
	importFormat = ""
	importDryRun = false
	serveAddr = ""
	pickLog = false
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRunCLI is runCLI that fails the test on error.
func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("fitcue %v: %v", args, err)
	}
	return out
}
