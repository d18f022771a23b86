// ABOUTME: Read-only state snapshot exposed to presentation layers
// ABOUTME: Includes the derived session phase and payment countdown

package session

import (
	"time"

	"github.com/markalston/tally/cli/internal/client"
)

// Phase is the coarse authentication state of the session
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseLoggingIn
	PhaseLoggedIn
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseLoggedOut:
		return "logged_out"
	case PhaseLoggingIn:
		return "logging_in"
	case PhaseLoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the session. Dashboard is shared with the
// Manager and must be treated as immutable.
type State struct {
	Phase            Phase
	Dashboard        *client.Dashboard
	Authenticated    bool
	PromptLogin      bool
	Loading          bool
	LastError        string
	SessionExpiry    *time.Time
	DaysUntilPayment int
}

// HasData reports whether a dashboard snapshot is cached
func (s State) HasData() bool {
	return s.Dashboard != nil
}
