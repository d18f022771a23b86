// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Drives the session manager and routes keyboard input between screens

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/session"
	"github.com/markalston/tally/cli/internal/tui/confirm"
	"github.com/markalston/tally/cli/internal/tui/dashboard"
	"github.com/markalston/tally/cli/internal/tui/icons"
	"github.com/markalston/tally/cli/internal/tui/login"
	"github.com/markalston/tally/cli/internal/tui/styles"
	"github.com/markalston/tally/cli/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenDashboard
	ScreenConfirm
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// expiryCheckInterval is how often the session deadline is checked
const expiryCheckInterval = time.Minute

// stateChangedMsg is sent whenever the session manager publishes
type stateChangedMsg struct{}

// loginDoneMsg is sent when a sign-in attempt finishes
type loginDoneMsg struct{}

// refreshDoneMsg is sent when a portal re-scrape finishes
type refreshDoneMsg struct{}

// submitDoneMsg is sent when a report submission finishes
type submitDoneMsg struct {
	submitted bool
}

// logoutDoneMsg is sent when sign-out finishes
type logoutDoneMsg struct{}

// expiryTickMsg triggers a session deadline check
type expiryTickMsg time.Time

// App is the root model for the TUI
type App struct {
	ctx        context.Context
	manager    *session.Manager
	states     <-chan session.State
	screen     Screen
	width      int
	height     int
	state      session.State
	username   string
	notice     string // Outcome of the last user action
	lastUpdate time.Time
	now        func() time.Time

	// Child models
	login     *login.Form
	prompt    *confirm.Prompt
	dashboard *dashboard.Dashboard
	spinner   spinner.Model
}

// New creates a new TUI application. username pre-fills the sign-in form.
func New(ctx context.Context, manager *session.Manager, username string) *App {
	a := &App{
		ctx:      ctx,
		manager:  manager,
		screen:   ScreenLogin,
		username: username,
		now:      time.Now,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
		login: login.New(username, ""),
	}
	if manager != nil {
		a.state = manager.State()
	}
	a.dashboard = dashboard.New(a.state, max(0, a.dashboardWidth()-panelPadding), a.contentHeight())
	return a
}

// Subscribe wires the app to session changes made outside its own commands,
// such as a deadline check. It returns the function that stops delivery.
func (a *App) Subscribe() func() {
	ch, cancel := a.manager.Subscribe()
	a.states = ch
	return cancel
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.login.Init(),
		a.spinner.Tick,
		waitForState(a.states),
		scheduleExpiryCheck(),
	)
}

// waitForState blocks until the manager publishes, then wakes the model
func waitForState(states <-chan session.State) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-states; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func scheduleExpiryCheck() tea.Cmd {
	return tea.Tick(expiryCheckInterval, func(t time.Time) tea.Msg {
		return expiryTickMsg(t)
	})
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(max(0, a.dashboardWidth()-panelPadding), a.contentHeight())
		if a.screen == ScreenLogin && a.login != nil {
			return a.updateLogin(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		case ScreenConfirm:
			return a.updatePrompt(msg)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case stateChangedMsg:
		return a, tea.Batch(a.sync(), waitForState(a.states))

	case expiryTickMsg:
		a.manager.CheckSessionExpiry()
		return a, tea.Batch(a.sync(), scheduleExpiryCheck())

	case login.SubmittedMsg:
		a.username = msg.Username
		return a, a.signIn(msg.Username, msg.Password)

	case login.CancelledMsg:
		return a, tea.Quit

	case confirm.ResultMsg:
		return a.handleConfirm(msg)

	case loginDoneMsg:
		cmd := a.sync()
		if !a.state.Authenticated {
			return a, a.showLogin(a.loginNotice())
		}
		return a, cmd

	case refreshDoneMsg:
		if a.manager.State().LastError == "" {
			a.notice = "Dashboard refreshed."
		}
		return a, a.sync()

	case submitDoneMsg:
		a.notice = ""
		if a.manager.State().LastError == "" {
			a.notice = session.MsgReportDeclined
			if msg.submitted {
				a.notice = session.MsgReportSubmitted
			}
		}
		return a, a.sync()

	case logoutDoneMsg:
		return a, a.sync()

	default:
		// Forward unknown messages to the active form (needed for huh internals)
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenConfirm:
			return a.updatePrompt(msg)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.login == nil || a.state.Phase == session.PhaseLoggingIn {
		return a, nil
	}
	model, cmd := a.login.Update(msg)
	a.login = model.(*login.Form)
	return a, cmd
}

func (a *App) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.prompt == nil {
		return a, nil
	}
	model, cmd := a.prompt.Update(msg)
	a.prompt = model.(*confirm.Prompt)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		if a.state.Loading {
			return a, nil
		}
		a.notice = ""
		return a, a.refresh()
	case "s":
		if a.state.Loading {
			return a, nil
		}
		return a, a.showPrompt(confirm.ActionSubmit)
	case "l":
		return a, a.showPrompt(confirm.ActionLogout)
	case "c":
		a.manager.ClearCache()
		a.notice = "Cache cleared."
		return a, a.sync()
	case "x":
		a.manager.ClearError()
		a.notice = ""
		return a, a.sync()
	}
	return a, nil
}

func (a *App) handleConfirm(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	// The session may have ended while the prompt was open
	if a.screen != ScreenConfirm {
		return a, nil
	}
	a.prompt = nil
	a.screen = ScreenDashboard
	if !msg.Confirmed {
		return a, nil
	}

	switch msg.Action {
	case confirm.ActionSubmit:
		a.notice = ""
		return a, a.submit()
	case confirm.ActionLogout:
		a.notice = ""
		return a, a.logout()
	}
	return a, nil
}

// sync pulls the authoritative snapshot and moves between screens. Channel
// payloads are only wake-ups, since they can arrive after a newer result.
func (a *App) sync() tea.Cmd {
	if a.manager == nil {
		return nil
	}
	st := a.manager.State()
	if st.Dashboard != nil && st.Dashboard != a.state.Dashboard {
		a.lastUpdate = a.now()
	}
	a.state = st
	a.dashboard.Update(st)

	switch {
	case st.Authenticated && a.screen == ScreenLogin:
		a.screen = ScreenDashboard
		a.login = nil
	case !st.Authenticated && a.screen != ScreenLogin:
		return a.showLogin(st.LastError)
	}
	return nil
}

// loginNotice explains why the sign-in form is shown again
func (a *App) loginNotice() string {
	if a.state.LastError != "" {
		return a.state.LastError
	}
	return session.MsgLoginFailed
}

func (a *App) showLogin(notice string) tea.Cmd {
	a.login = login.New(a.username, notice)
	a.prompt = nil
	a.screen = ScreenLogin
	a.notice = ""
	return a.login.Init()
}

func (a *App) showPrompt(action confirm.Action) tea.Cmd {
	a.prompt = confirm.New(action)
	a.screen = ScreenConfirm
	return a.prompt.Init()
}

// signIn creates a command that authenticates and loads the dashboard
func (a *App) signIn(username, password string) tea.Cmd {
	return func() tea.Msg {
		a.manager.Login(a.ctx, username, password)
		return loginDoneMsg{}
	}
}

// refresh creates a command that re-scrapes the portal
func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		a.manager.RefreshData(a.ctx)
		return refreshDoneMsg{}
	}
}

// submit creates a command that files the monthly report
func (a *App) submit() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{submitted: a.manager.SubmitReport(a.ctx)}
	}
}

// logout creates a command that ends the session
func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		a.manager.Logout(context.WithoutCancel(a.ctx))
		return logoutDoneMsg{}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenConfirm:
		content = a.viewConfirm()
	default:
		content = a.viewLogin()
	}

	return a.wrapWithFrame(content)
}

// viewLogin renders the sign-in screen
func (a *App) viewLogin() string {
	if a.state.Phase == session.PhaseLoggingIn {
		return a.spinner.View() + " Signing in..."
	}
	if a.login != nil {
		return a.login.View()
	}
	return ""
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	var top []string
	if a.state.LastError != "" {
		top = append(top, widgets.StatusText(a.state.LastError, widgets.StatusCritical))
	} else if a.notice != "" {
		top = append(top, widgets.StatusText(a.notice, noticeLevel(a.notice)))
	}
	if a.state.Loading {
		top = append(top, a.spinner.View()+" Talking to the portal...")
	}

	leftPane := styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())

	rightContent := styles.Title.Render("Actions") + "\n"
	rightContent += icons.Refresh.String() + " Refresh from portal\n"
	rightContent += icons.Submit.String() + " Submit report\n"
	rightContent += icons.Clear.String() + " Clear cache\n"
	rightContent += icons.Logout.String() + " Sign out\n"
	rightContent += icons.Quit.String() + " Quit"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	var body string
	if a.width < minTerminalWidth {
		body = leftPane
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	}

	if len(top) == 0 {
		return body
	}
	return strings.Join(top, "  ") + "\n" + body
}

// noticeLevel picks the banner color for an action outcome
func noticeLevel(notice string) widgets.StatusLevel {
	if notice == session.MsgReportDeclined {
		return widgets.StatusWarning
	}
	return widgets.StatusOK
}

// viewConfirm renders the confirmation prompt
func (a *App) viewConfirm() string {
	if a.prompt == nil {
		return ""
	}
	return styles.ActivePanel.Render(a.prompt.View())
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return max(0, a.width-panelPadding)
	}
	return (a.width-panelPadding)*2/3
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return max(0, a.width-a.dashboardWidth()-2*panelPadding)
}

// contentHeight calculates the height available for dashboard content
func (a *App) contentHeight() int {
	// Header, newline, panel border+padding (4), status line, newline, footer
	return max(0, a.height-9)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Tally"))

	rightText := ""
	if a.state.Authenticated {
		rightText = " " + contextStyle.Render(session.PaymentLabel(a.now())) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Sign-in", "Esc Quit"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "s Submit", "c Clear", "l Logout", "q Quit"}
		if a.state.LastError != "" {
			shortcuts = append(shortcuts, "x Dismiss")
		}
	case ScreenConfirm:
		shortcuts = []string{"y Yes", "n No", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, styles.KeyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}

	leftText := " " + strings.Join(styledShortcuts, "  ") + " "

	rightText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenDashboard {
		rightText = " " + statusStyle.Render("Updated "+formatTimeSince(a.now().Sub(a.lastUpdate))) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats an elapsed duration in human-readable form
func formatTimeSince(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, manager *session.Manager, username string) error {
	app := New(ctx, manager, username)
	unsubscribe := app.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
