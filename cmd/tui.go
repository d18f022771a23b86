// ABOUTME: Interactive terminal dashboard command for tally CLI
// ABOUTME: Runs the TUI with logs redirected to a file under the config dir

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/tally/cli/internal/logger"
	"github.com/markalston/tally/cli/internal/session"
	"github.com/markalston/tally/cli/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard",
	Long: `Open a full-screen dashboard for the benefits portal.

Keys on the dashboard:
  r  Re-scrape the portal
  s  Submit your monthly report
  c  Clear the cached dashboard
  l  Sign out
  q  Quit

Logs are written to debug.log in the config directory while the
dashboard is open.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runTUI(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI redirects logging away from the terminal and runs the dashboard
func runTUI(ctx context.Context) error {
	configDir := ""
	level, format := "info", "text"
	if cfg != nil {
		configDir = cfg.ConfigDir
		level, format = cfg.LogLevel, cfg.LogFormat
	}

	logFile, err := logger.OpenFile(configDir)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(logFile, level, format)

	m := newManager()
	defer endSession(ctx, m)

	slog.Info("starting dashboard", "api_url", GetAPIURL())
	return tui.Run(ctx, m, GetUsername())
}

// endSession signs out when the dashboard closes with a live session
func endSession(ctx context.Context, m *session.Manager) {
	if m.State().Authenticated {
		signOut(ctx, m)
	}
}
