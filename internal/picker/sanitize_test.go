package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Rowing Machine", "Rowing Machine"},
		{"color", "\x1b[31mRunning\x1b[0m", "Running"},
		{"multiple SGR", "\x1b[1;31;42mYoga\x1b[0m", "Yoga"},
		{"OSC with BEL", "\x1b]0;title\x07Boxing", "Boxing"},
		{"OSC hyperlink", "\x1b]8;;https://example.com\x07Hiking\x1b]8;;\x07", "Hiking"},
		{"charset", "\x1b(BSwimming", "Swimming"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestValidateUTF8(t *testing.T) {
	assert.Equal(t, "Café Walk", ValidateUTF8("Café Walk"))
	assert.Equal(t, "Run�ning", ValidateUTF8("Run\x80ning"))
	assert.Equal(t, "�ok", ValidateUTF8("\x80\x81ok"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Jump Rope", Sanitize("Jump\nRope"))
	assert.Equal(t, "Pilates ", Sanitize("\x1b[1mPilates\x1b[0m\t"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		maxWidth int
	}{
		{"fits", "Yoga", "Yoga", 10},
		{"exact", "Yoga", "Yoga", 4},
		{"cut", "Rowing Machine", "Rowing…", 7},
		{"one column", "Rowing", "…", 1},
		{"zero", "Rowing", "", 0},
		{"CJK", "你好世界", "你好…", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestMiddleTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		maxWidth int
	}{
		{"fits exactly", "abcde", "abcde", 5},
		{"needs truncation", "abcdefghij", "abc…hij", 7},
		{"max 3", "abcdef", "a…f", 3},
		{"max 2", "abcdef", "ab", 2},
		{"max 0", "abcdef", "", 0},
		{"empty string", "", "", 5},
		// 8 columns into 7: head and tail budgets of 3 each fit one wide rune.
		{"CJK", "你好世界", "你…界", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MiddleTruncate(tt.input, tt.maxWidth))
		})
	}
}
