// ABOUTME: Refresh command for tally CLI
// ABOUTME: Forces a portal re-scrape and prints the fresh dashboard

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/tally/cli/internal/session"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-scrape the portal and show the updated dashboard",
	Long: `Ask the proxy to re-scrape the benefits portal, then print the fresh dashboard.

A re-scrape drives a browser on the server and can take well over ten
seconds. Raise TALLY_REFRESH_TIMEOUT if it times out.

Exit codes:
  0 - Dashboard refreshed
  2 - Error (sign-in failed, connectivity, re-scrape failed)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		creds, err := resolveCredentials(os.Stdin, isInteractive())
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runRefresh(ctx, newManager(), os.Stdout, creds)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

// runRefresh signs in, triggers a re-scrape, and returns exit code
func runRefresh(ctx context.Context, m *session.Manager, w io.Writer, creds credentials) int {
	if err := signIn(ctx, m, creds); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer signOut(ctx, m)

	if !IsJSONOutput() {
		fmt.Fprintln(w, "Refreshing from portal, this can take a while...")
	}
	m.RefreshData(ctx)

	return printDashboard(m.State(), w)
}
