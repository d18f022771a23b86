// ABOUTME: Tests for slog configuration
// ABOUTME: Verifies level parsing, output format, and the debug log file

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseLevel(tc.in); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestInit_JSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	l := Init(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("signed in", "user", "jdoe")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line at info level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "signed in" || entry["user"] != "jdoe" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInit_Text(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	Init(&buf, "debug", "text")
	slog.Debug("portal request", "path", "/api/latest")

	if !strings.Contains(buf.String(), "path=/api/latest") {
		t.Errorf("expected text output via default logger, got %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tally")

	f, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("expected debug.log to exist: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestOpenFile_EmptyDir(t *testing.T) {
	f, err := OpenFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Write([]byte("dropped")); err != nil {
		t.Errorf("expected discard writer, got %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
