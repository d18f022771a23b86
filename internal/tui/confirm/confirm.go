// ABOUTME: Yes/no confirmation prompt for destructive or remote actions
// ABOUTME: Wraps a huh Confirm field so it can run inside the root model

package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/tally/cli/internal/tui/styles"
)

// Action identifies what the user is being asked to confirm
type Action int

const (
	ActionSubmit Action = iota
	ActionLogout
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionSubmit:
		return "submit"
	case ActionLogout:
		return "logout"
	default:
		return "unknown"
	}
}

func (a Action) prompt() (title, description string) {
	switch a {
	case ActionSubmit:
		return "Submit your monthly report?", "The portal will file this month's report for you."
	case ActionLogout:
		return "Sign out?", "Your cached dashboard will be cleared."
	default:
		return "Continue?", ""
	}
}

// ResultMsg carries the user's answer
type ResultMsg struct {
	Action    Action
	Confirmed bool
}

// Prompt is a bubbletea model asking a single yes/no question
type Prompt struct {
	action    Action
	form      *huh.Form
	confirmed bool
	answered  bool
}

// New creates a prompt for action. The default answer is no.
func New(action Action) *Prompt {
	p := &Prompt{action: action}
	title, desc := action.prompt()
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Yes").
				Negative("No").
				Value(&p.confirmed),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	return p
}

// Action returns the action being confirmed
func (p *Prompt) Action() Action {
	return p.action
}

// Init implements tea.Model
func (p *Prompt) Init() tea.Cmd {
	return p.form.Init()
}

// Update implements tea.Model
func (p *Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return p, p.answer(false)
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted && !p.answered {
		return p, tea.Batch(cmd, p.answer(p.confirmed))
	}
	return p, cmd
}

func (p *Prompt) answer(confirmed bool) tea.Cmd {
	p.answered = true
	result := ResultMsg{Action: p.action, Confirmed: confirmed}
	return func() tea.Msg { return result }
}

// View implements tea.Model
func (p *Prompt) View() string {
	return p.form.View()
}
