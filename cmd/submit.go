// ABOUTME: Submit command for tally CLI
// ABOUTME: Files the monthly report and reports whether the portal accepted it

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/markalston/tally/cli/internal/session"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit your monthly report",
	Long: `Sign in and submit the monthly report through the portal.

Exit codes:
  0 - Report accepted
  1 - Portal declined the submission
  2 - Error (sign-in failed, connectivity, session expired)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		creds, err := resolveCredentials(os.Stdin, isInteractive())
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runSubmit(ctx, newManager(), os.Stdout, creds)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

// runSubmit signs in, submits the report, and returns exit code
func runSubmit(ctx context.Context, m *session.Manager, w io.Writer, creds credentials) int {
	if err := signIn(ctx, m, creds); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer signOut(ctx, m)

	submitted := m.SubmitReport(ctx)
	if st := m.State(); st.LastError != "" {
		fmt.Fprintf(w, "Error: %s\n", st.LastError)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSubmitJSON(submitted))
	} else {
		fmt.Fprintln(w, formatSubmitHuman(submitted))
	}

	if !submitted {
		return 1
	}
	return 0
}

// formatSubmitHuman formats the submission verdict for human readability
func formatSubmitHuman(submitted bool) string {
	if submitted {
		return session.MsgReportSubmitted
	}
	return session.MsgReportDeclined
}

// formatSubmitJSON formats the submission verdict as JSON
func formatSubmitJSON(submitted bool) string {
	output := map[string]interface{}{
		"submitted": submitted,
		"message":   formatSubmitHuman(submitted),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
