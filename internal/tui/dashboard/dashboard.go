// ABOUTME: Dashboard component displaying the benefits summary
// ABOUTME: Shows next payment, status, monthly reports, and portal messages

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/client"
	"github.com/markalston/tally/cli/internal/session"
	"github.com/markalston/tally/cli/internal/tui/icons"
	"github.com/markalston/tally/cli/internal/tui/styles"
	"github.com/markalston/tally/cli/internal/tui/widgets"
)

// blockGap separates the two metric blocks in the wide layout
const blockGap = 2

// Dashboard displays a session snapshot
type Dashboard struct {
	state  session.State
	now    func() time.Time
	width  int
	height int
}

// New creates a new dashboard for the given snapshot
func New(state session.State, width, height int) *Dashboard {
	return &Dashboard{
		state:  state,
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// Update replaces the snapshot being displayed
func (d *Dashboard) Update(state session.State) {
	d.state = state
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetClock overrides the clock used for payment countdowns
func (d *Dashboard) SetClock(now func() time.Time) {
	d.now = now
}

// View renders the dashboard
func (d *Dashboard) View() string {
	data := d.state.Dashboard
	if data == nil {
		msg := "No dashboard data yet. Press r to fetch it from the portal."
		if d.state.Loading {
			msg = "Loading dashboard..."
		}
		return lipgloss.NewStyle().Width(d.width).Render(styles.Subtitle.Render(msg))
	}

	today := d.now()
	var sections []string

	sections = append(sections, d.renderHero(data, today))
	sections = append(sections, d.renderInfo(data, today))
	sections = append(sections, d.renderReports(data))
	sections = append(sections, d.renderMessages(data))

	return lipgloss.NewStyle().
		Width(d.width).
		MaxHeight(d.height).
		Render(strings.Join(sections, "\n\n"))
}

// renderHero shows the payment amount and the cycle countdown
func (d *Dashboard) renderHero(data *client.Dashboard, today time.Time) string {
	days := session.DaysUntilPayment(today)
	income := client.Deref(data.Income, "$0.00")

	blockWidth := (d.width - blockGap) / 2
	stacked := blockWidth < 24
	if stacked {
		blockWidth = d.width
	}

	config := widgets.DefaultMetricBlockConfig()
	config.Width = blockWidth

	payment := widgets.MetricBlock(icons.Payment, "Next Payment", income, session.DaysAwayLabel(days), config)

	cycle := widgets.MetricBlockWithBar(icons.Calendar, "Payment Cycle",
		session.PaymentLabel(today), session.CycleProgress(today),
		fmt.Sprintf("Paid on the %dth", session.PaymentDay), config)

	if stacked {
		return payment + "\n" + cycle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, payment, strings.Repeat(" ", blockGap), cycle)
}

// renderInfo shows status, benefit type, and session details
func (d *Dashboard) renderInfo(data *client.Dashboard, today time.Time) string {
	row := func(icon icons.Icon, label, value string) string {
		return styles.LabelStyle.Render(icon.String()+" "+label) + " " + value
	}

	rows := []string{
		row(icons.Benefit, "Status", widgets.StatusBadge(client.Deref(data.Status, ""))),
		row(icons.Report, "Benefit Type", styles.ValueStyle.Render(client.Deref(data.BenefitType, "--"))),
		row(icons.Calendar, "Next Payment", styles.ValueStyle.Render(session.PaymentLabel(today))),
	}
	if data.NextPaymentDate != nil {
		rows = append(rows, row(icons.Info, "Portal Date", *data.NextPaymentDate))
	}
	if exp := d.state.SessionExpiry; exp != nil {
		rows = append(rows, row(icons.Clock, "Session", "until "+exp.Local().Format("15:04")))
	}
	return strings.Join(rows, "\n")
}

// renderReports shows the monthly report table as scraped
func (d *Dashboard) renderReports(data *client.Dashboard) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Report.String() + " Monthly Reports"))
	sb.WriteString("\n")
	if data.TableData == nil || strings.TrimSpace(*data.TableData) == "" {
		sb.WriteString(styles.Subtitle.Render("No reports loaded"))
		return sb.String()
	}
	sb.WriteString(strings.TrimRight(*data.TableData, "\n"))
	return sb.String()
}

// renderMessages lists portal messages in the order delivered
func (d *Dashboard) renderMessages(data *client.Dashboard) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Messages (%d)", icons.Mail.String(), len(data.Messages))))
	sb.WriteString("\n")
	if len(data.Messages) == 0 {
		sb.WriteString(styles.Subtitle.Render("No messages"))
		return sb.String()
	}

	for _, msg := range data.Messages {
		subject := styles.ValueStyle.Render(client.Deref(msg.Subject, "No subject"))
		if msg.Date != nil {
			subject = styles.Subtitle.Render(*msg.Date) + "  " + subject
		}
		sb.WriteString(subject)
		sb.WriteString("\n")
		if msg.Body != nil {
			sb.WriteString("  " + *msg.Body + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
