// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps portal benefit statuses onto colored badges and icons

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// statusKeywords are matched case-insensitively against portal status text
var statusKeywords = []struct {
	word  string
	level StatusLevel
}{
	{"denied", StatusCritical},
	{"suspended", StatusCritical},
	{"terminated", StatusCritical},
	{"closed", StatusCritical},
	{"ineligible", StatusCritical},
	{"pending", StatusWarning},
	{"review", StatusWarning},
	{"action required", StatusWarning},
	{"overdue", StatusWarning},
	{"active", StatusOK},
	{"approved", StatusOK},
	{"eligible", StatusOK},
	{"paid", StatusOK},
}

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// LevelForStatus classifies free-form portal status text. Unknown text is
// informational and an empty status is neutral.
func LevelForStatus(status string) StatusLevel {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return StatusNeutral
	}
	// "ineligible" must win over "eligible"
	for _, kw := range statusKeywords {
		if strings.Contains(s, kw.word) {
			return kw.level
		}
	}
	return StatusInfo
}

// StatusBadge renders the portal status as a badge, "--" when unknown
func StatusBadge(status string) string {
	if strings.TrimSpace(status) == "" {
		return Badge("--", StatusNeutral)
	}
	return Badge(status, LevelForStatus(status))
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colors(level)
	textStyle := lipgloss.NewStyle().Foreground(bg)
	return fmt.Sprintf("%s %s", StatusIcon(level), textStyle.Render(text))
}
