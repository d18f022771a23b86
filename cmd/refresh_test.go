// ABOUTME: Tests for the refresh command
// ABOUTME: Verifies the check-then-fetch sequence and error exit codes

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/markalston/tally/cli/internal/session"
)

func TestRunRefresh_Success(t *testing.T) {
	portal := newFakePortal()
	m := startPortal(t, portal)

	var buf bytes.Buffer
	exitCode := runRefresh(context.Background(), m, &buf, goodCreds)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, buf.String())
	}
	if portal.called("/api/check") != 1 {
		t.Errorf("expected one re-scrape, got %d", portal.called("/api/check"))
	}
	if !strings.Contains(buf.String(), "$2,000.00") {
		t.Errorf("expected refreshed income in output\n%s", buf.String())
	}
}

func TestRunRefresh_Errors(t *testing.T) {
	tests := []struct {
		name      string
		checkCode int
		expected  string
	}{
		{"scrape failed", http.StatusBadGateway, "Server error: 502"},
		{"session rejected", http.StatusUnauthorized, session.MsgSessionExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			portal := newFakePortal()
			portal.checkCode = tc.checkCode
			m := startPortal(t, portal)

			var buf bytes.Buffer
			exitCode := runRefresh(context.Background(), m, &buf, goodCreds)

			if exitCode != 2 {
				t.Errorf("expected exit code 2, got %d", exitCode)
			}
			if !strings.Contains(buf.String(), tc.expected) {
				t.Errorf("expected %q in output\n%s", tc.expected, buf.String())
			}
		})
	}
}

func TestRunRefresh_JSONHasNoProgressLine(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	m := startPortal(t, newFakePortal())

	var buf bytes.Buffer
	runRefresh(context.Background(), m, &buf, goodCreds)

	if strings.Contains(buf.String(), "Refreshing") {
		t.Errorf("expected pure JSON output\n%s", buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON object\n%s", buf.String())
	}
}
