// ABOUTME: Sign-in form as a bubbletea model
// ABOUTME: Collects credentials with huh and hands them off without keeping the password

package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/tui/icons"
	"github.com/markalston/tally/cli/internal/tui/styles"
)

// SubmittedMsg is sent when the user completes the form
type SubmittedMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when the user leaves the form with esc
type CancelledMsg struct{}

// Form manages the sign-in screen
type Form struct {
	form      *huh.Form
	username  string
	password  string
	notice    string
	submitted bool
	width     int
}

// New creates a sign-in form. username pre-fills the first field and notice
// is shown above the form, typically the reason the user is signing in again.
func New(username, notice string) *Form {
	f := &Form{
		username: username,
		notice:   notice,
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&f.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(required("password")),
		).Title("Sign in").
			Description("Use your benefits portal credentials. They are never saved."),
	).WithTheme(styles.FormTheme()).WithShowHelp(true)
	return f
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted && !f.submitted {
		f.submitted = true
		submitted := SubmittedMsg{Username: strings.TrimSpace(f.username), Password: f.password}
		f.password = ""
		return f, tea.Batch(cmd, func() tea.Msg { return submitted })
	}

	return f, cmd
}

// Username returns the username currently entered
func (f *Form) Username() string {
	return strings.TrimSpace(f.username)
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " Tally"))
	sb.WriteString("\n")
	if f.notice != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Danger).Render(f.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(f.form.View())

	return sb.String()
}
