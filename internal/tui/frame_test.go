// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width on every screen

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/client"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width-%d", targetWidth), func(t *testing.T) {
			clock := testNow
			app := signedIn(t, &fakePortal{loginOK: true, latest: &client.Dashboard{Income: strPtr("$1.00")}}, &clock)

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			// Frame clamps to a minimum of 80 for usability
			expectedWidth := max(targetWidth, minTerminalWidth)

			for _, screen := range []Screen{ScreenDashboard, ScreenLogin} {
				app.screen = screen
				lines := strings.Split(app.View(), "\n")

				header := lines[0]
				if !strings.HasPrefix(header, "╭") {
					t.Fatalf("screen %d: header not on first line: %q", screen, header)
				}
				if w := lipgloss.Width(header); w != expectedWidth {
					t.Errorf("screen %d: header width mismatch: expected %d, got %d\n%q", screen, expectedWidth, w, header)
				}

				footer := lines[len(lines)-1]
				if !strings.HasPrefix(footer, "╰") {
					t.Fatalf("screen %d: footer not on last line: %q", screen, footer)
				}
				if w := lipgloss.Width(footer); w != expectedWidth {
					t.Errorf("screen %d: footer width mismatch: expected %d, got %d\n%q", screen, expectedWidth, w, footer)
				}
			}
		})
	}
}

func TestHeaderShowsPaymentWhenSignedIn(t *testing.T) {
	clock := testNow
	app := newTestApp(&fakePortal{}, &clock)
	if strings.Contains(app.renderHeader(), "Oct 25") {
		t.Error("expected no payment context before sign-in")
	}

	app = signedIn(t, &fakePortal{loginOK: true, latest: &client.Dashboard{}}, &clock)
	if header := app.renderHeader(); !strings.Contains(header, "Oct 25 (6d)") {
		t.Errorf("expected payment context in header, got %q", header)
	}
}

func TestFooterShortcuts(t *testing.T) {
	clock := testNow
	app := newTestApp(&fakePortal{}, &clock)

	tests := []struct {
		screen   Screen
		expected []string
	}{
		{ScreenLogin, []string{"Enter", "Esc"}},
		{ScreenDashboard, []string{"Refresh", "Submit", "Clear", "Logout", "Quit"}},
		{ScreenConfirm, []string{"Yes", "No"}},
	}

	for _, tc := range tests {
		app.screen = tc.screen
		footer := app.renderFooter()
		for _, want := range tc.expected {
			if !strings.Contains(footer, want) {
				t.Errorf("screen %d: expected footer to contain %q, got %q", tc.screen, want, footer)
			}
		}
	}
}
