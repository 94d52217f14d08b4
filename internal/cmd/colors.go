package cmd

import (
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// colorMode is set by the --color flag: auto, always or never.
var colorMode = "auto"

var (
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleCyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// applyColorMode sets the lipgloss color profile from colorMode and the
// environment.
func applyColorMode() {
	lipgloss.SetColorProfile(colorProfile())
}

func colorProfile() termenv.Profile {
	switch colorMode {
	case "always":
		return termenv.ANSI256
	case "never":
		return termenv.Ascii
	}
	if shouldDisableColors() {
		return termenv.Ascii
	}
	return termenv.NewOutput(os.Stdout).ColorProfile()
}

func shouldDisableColors() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	if runtime.GOOS == "windows" {
		if os.Getenv("WT_SESSION") != "" || os.Getenv("TERM_PROGRAM") != "" {
			return false
		}
		return os.Getenv("ANSICON") == "" && os.Getenv("ConEmuANSI") != "ON"
	}

	return false
}

// termWidth returns the terminal width: ioctl first, then $COLUMNS, then 80.
func termWidth() int {
	if w := getTermWidthIoctl(); w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return 80
}
