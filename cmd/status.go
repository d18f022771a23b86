// ABOUTME: Status command for tally CLI
// ABOUTME: Signs in and shows the next payment, benefit status, and messages

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/markalston/tally/cli/internal/client"
	"github.com/markalston/tally/cli/internal/session"
	"github.com/markalston/tally/cli/internal/tui/widgets"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your next payment and portal messages",
	Long: `Sign in to the portal, load the cached dashboard, and print it.

Exit codes:
  0 - Dashboard shown
  2 - Error (sign-in failed, connectivity, invalid response)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		creds, err := resolveCredentials(os.Stdin, isInteractive())
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runStatus(ctx, newManager(), os.Stdout, creds)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus signs in, prints the dashboard, and returns exit code
func runStatus(ctx context.Context, m *session.Manager, w io.Writer, creds credentials) int {
	if err := signIn(ctx, m, creds); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer signOut(ctx, m)

	return printDashboard(m.State(), w)
}

// printDashboard writes the state or its error and returns exit code
func printDashboard(st session.State, w io.Writer) int {
	if st.LastError != "" {
		fmt.Fprintf(w, "Error: %s\n", st.LastError)
		return 2
	}

	now := time.Now()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatDashboardJSON(st, now))
	} else {
		fmt.Fprintln(w, formatDashboardHuman(st, now))
	}
	return 0
}

// formatDashboardHuman formats the dashboard for human readability
func formatDashboardHuman(st session.State, now time.Time) string {
	if st.Dashboard == nil {
		return "No dashboard data yet. Run `tally refresh` to fetch it from the portal."
	}
	d := st.Dashboard

	var sb strings.Builder
	fmt.Fprintf(&sb, "Next Payment:   %s\n", client.Deref(d.Income, "$0.00"))
	fmt.Fprintf(&sb, "Payment Date:   %s, %s\n", session.PaymentLabel(now), session.DaysAwayLabel(session.DaysUntilPayment(now)))
	fmt.Fprintf(&sb, "Cycle:          %s\n", widgets.ProgressBarWithLabel(session.CycleProgress(now), widgets.DefaultProgressBarConfig()))
	fmt.Fprintf(&sb, "Status:         %s\n", client.Deref(d.Status, "--"))
	fmt.Fprintf(&sb, "Benefit Type:   %s\n", client.Deref(d.BenefitType, "--"))
	if st.SessionExpiry != nil {
		fmt.Fprintf(&sb, "Session Until:  %s\n", st.SessionExpiry.Local().Format("15:04"))
	}

	if d.TableData != nil {
		sb.WriteString("\nMonthly Reports:\n")
		for _, line := range strings.Split(*d.TableData, "\n") {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
	}

	if len(d.Messages) > 0 {
		fmt.Fprintf(&sb, "\nMessages (%d):\n", len(d.Messages))
		for _, msg := range d.Messages {
			date := client.Deref(msg.Date, "")
			if date != "" {
				date = "[" + date + "] "
			}
			fmt.Fprintf(&sb, "  %s%s\n", date, client.Deref(msg.Subject, "No subject"))
			if msg.Body != nil {
				fmt.Fprintf(&sb, "      %s\n", *msg.Body)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// dashboardOutput is the --json shape for dashboard commands
type dashboardOutput struct {
	Income           *string         `json:"income"`
	NextPaymentDate  *string         `json:"next_payment_date"`
	NextPaymentLabel string          `json:"next_payment_label"`
	DaysUntilPayment int             `json:"days_until_payment"`
	BenefitType      *string         `json:"benefit_type"`
	Status           *string         `json:"status"`
	TableData        *string         `json:"table_data"`
	Messages         []messageOutput `json:"messages"`
	SessionExpiry    *time.Time      `json:"session_expiry,omitempty"`
}

type messageOutput struct {
	ID      string  `json:"id"`
	Subject *string `json:"subject"`
	Date    *string `json:"date"`
	Body    *string `json:"body"`
}

// formatDashboardJSON formats the dashboard as JSON
func formatDashboardJSON(st session.State, now time.Time) string {
	out := dashboardOutput{
		NextPaymentLabel: session.PaymentLabel(now),
		DaysUntilPayment: session.DaysUntilPayment(now),
		Messages:         []messageOutput{},
		SessionExpiry:    st.SessionExpiry,
	}
	if d := st.Dashboard; d != nil {
		out.Income = d.Income
		out.NextPaymentDate = d.NextPaymentDate
		out.BenefitType = d.BenefitType
		out.Status = d.Status
		out.TableData = d.TableData
		for _, msg := range d.Messages {
			out.Messages = append(out.Messages, messageOutput{
				ID:      msg.StableID(),
				Subject: msg.Subject,
				Date:    msg.Date,
				Body:    msg.Body,
			})
		}
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}
