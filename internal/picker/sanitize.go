package picker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// ansiRE matches CSI, OSC and charset escape sequences.
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`|` +
	`[#()*+\-./][A-Za-z0-9]` +
	`)`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// ValidateUTF8 replaces each run of invalid bytes with U+FFFD.
func ValidateUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// Sanitize makes a user-supplied exercise name safe to draw on one line:
// escapes are stripped, invalid UTF-8 is replaced and control characters
// become spaces.
func Sanitize(s string) string {
	s = ValidateUTF8(StripANSI(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// Truncate cuts s to maxWidth display columns, ending in an ellipsis when
// anything was dropped.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return prefixWidth(s, maxWidth-1) + ellipsis
}

// MiddleTruncate keeps the head and tail of s around an ellipsis so the
// result fits maxWidth display columns. Below three columns it simply cuts.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return prefixWidth(s, maxWidth)
	}

	remaining := maxWidth - 1
	return prefixWidth(s, (remaining+1)/2) + ellipsis + suffixWidth(s, remaining/2)
}

// prefixWidth returns the longest prefix of s at most maxWidth columns wide.
func prefixWidth(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// suffixWidth returns the longest suffix of s at most maxWidth columns wide.
func suffixWidth(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
