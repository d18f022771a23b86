// ABOUTME: Tests for Nerd Font detection
// ABOUTME: Covers the explicit override and terminal heuristics

package icons

import "testing"

func TestDetectNerdFonts(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected bool
	}{
		{"nothing set", map[string]string{}, false},
		{"override on", map[string]string{"TALLY_NERD_FONTS": "1"}, true},
		{"override true", map[string]string{"TALLY_NERD_FONTS": "TRUE"}, true},
		{"override off beats terminal", map[string]string{"TALLY_NERD_FONTS": "0", "TERM_PROGRAM": "iTerm.app"}, false},
		{"iterm", map[string]string{"TERM_PROGRAM": "iTerm.app"}, true},
		{"kitty term", map[string]string{"TERM": "xterm-kitty"}, true},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, false},
		{"generic flag", map[string]string{"NERD_FONTS": "1"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			getenv := func(k string) string { return tc.env[k] }
			if got := detectNerdFonts(getenv); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIconString(t *testing.T) {
	icon := Icon{NerdFont: "N", Fallback: "F"}
	got := icon.String()
	if got != "N" && got != "F" {
		t.Errorf("expected one of the variants, got %q", got)
	}
}
