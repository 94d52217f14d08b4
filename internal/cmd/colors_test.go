package cmd

import (
	"runtime"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestColorProfile_Modes(t *testing.T) {
	origMode := colorMode
	t.Cleanup(func() {
		colorMode = origMode
		lipgloss.SetColorProfile(termenv.Ascii)
	})
	t.Setenv("NO_COLOR", "1")

	colorMode = "always"
	if got := colorProfile(); got != termenv.ANSI256 {
		t.Errorf("colorProfile(always) = %v, want ANSI256 even with NO_COLOR", got)
	}

	colorMode = "never"
	if got := colorProfile(); got != termenv.Ascii {
		t.Errorf("colorProfile(never) = %v, want Ascii", got)
	}

	colorMode = "auto"
	if got := colorProfile(); got != termenv.Ascii {
		t.Errorf("colorProfile(auto) with NO_COLOR = %v, want Ascii", got)
	}
}

func TestApplyColorMode_NeverRendersPlain(t *testing.T) {
	origMode := colorMode
	t.Cleanup(func() { colorMode = origMode })

	colorMode = "never"
	applyColorMode()
	if got := styleRed.Render("x"); got != "x" {
		t.Errorf("styleRed.Render = %q, want plain text", got)
	}
}

func TestShouldDisableColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !shouldDisableColors() {
		t.Error("NO_COLOR should disable colors")
	}

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if !shouldDisableColors() {
		t.Error("TERM=dumb should disable colors")
	}

	if runtime.GOOS != "windows" {
		t.Setenv("TERM", "xterm-256color")
		if shouldDisableColors() {
			t.Error("xterm-256color should keep colors")
		}
	}
}

func TestTermWidth(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	w := termWidth()
	if getTermWidthIoctl() <= 0 && w != 132 {
		t.Errorf("termWidth() = %d, want $COLUMNS", w)
	}

	t.Setenv("COLUMNS", "junk")
	if termWidth() <= 0 {
		t.Error("termWidth() should fall back to a positive width")
	}
}
