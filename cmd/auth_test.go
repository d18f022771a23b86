// ABOUTME: Tests for credential collection
// ABOUTME: Covers stdin password reading and non-interactive resolution

package cmd

import (
	"strings"
	"testing"
)

func TestReadPassword(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"newline terminated", "hunter2\n", "hunter2", false},
		{"crlf terminated", "hunter2\r\n", "hunter2", false},
		{"no trailing newline", "hunter2", "hunter2", false},
		{"only first line", "first\nsecond\n", "first", false},
		{"keeps inner spaces", "  pass word \n", "  pass word ", false},
		{"empty", "", "", true},
		{"blank line", "\n", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readPassword(strings.NewReader(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestResolveCredentials_NonInteractive(t *testing.T) {
	defer func() {
		username = ""
		passwordStdin = false
	}()

	t.Setenv("TALLY_USERNAME", "")

	t.Run("username and stdin password", func(t *testing.T) {
		username = "jdoe"
		passwordStdin = true

		creds, err := resolveCredentials(strings.NewReader("hunter2\n"), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if creds.username != "jdoe" || creds.password != "hunter2" {
			t.Errorf("unexpected credentials %+v", creds)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		username = "jdoe"
		passwordStdin = false

		if _, err := resolveCredentials(strings.NewReader(""), false); err == nil {
			t.Error("expected error without a password")
		}
	})

	t.Run("missing username", func(t *testing.T) {
		username = ""
		passwordStdin = true

		_, err := resolveCredentials(strings.NewReader("hunter2\n"), false)
		if err == nil || !strings.Contains(err.Error(), "--username") {
			t.Errorf("expected usage hint, got %v", err)
		}
	})
}

func TestRequired(t *testing.T) {
	if err := required("password")(""); err == nil {
		t.Error("expected error for empty value")
	}
	if err := required("password")("x"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
