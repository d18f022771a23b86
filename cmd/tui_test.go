// ABOUTME: Tests for the tui command
// ABOUTME: Verifies the remote session is only closed when one is open

package cmd

import (
	"context"
	"testing"
)

func TestEndSession(t *testing.T) {
	tests := []struct {
		name    string
		signIn  bool
		signOut bool
		logouts int
	}{
		{"never signed in", false, false, 0},
		{"signed in", true, false, 1},
		{"already signed out", true, true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			portal := newFakePortal()
			m := startPortal(t, portal)
			ctx := context.Background()

			if tc.signIn {
				if err := signIn(ctx, m, goodCreds); err != nil {
					t.Fatalf("sign-in failed: %v", err)
				}
			}
			if tc.signOut {
				m.Logout(ctx)
			}

			endSession(ctx, m)

			if got := portal.called("/api/logout"); got != tc.logouts {
				t.Errorf("expected %d logout calls, got %d", tc.logouts, got)
			}
			if m.State().Authenticated {
				t.Error("expected session to be closed")
			}
		})
	}
}
