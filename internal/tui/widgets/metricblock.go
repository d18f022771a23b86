// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Combines icon, value, and optional progress bar in a bordered panel

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/tally/cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       30,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#0EA5E9"), // Sky
		ValueColor:  lipgloss.Color("#10B981"), // Green
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	config = normalize(config)
	innerWidth := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return frame(icon, title, config, []string{
		valueStyle.Render(truncate(value, innerWidth)),
		subtitleStyle.Render(truncate(subtitle, innerWidth)),
	})
}

// MetricBlockWithBar renders a metric block with a progress bar under the value
func MetricBlockWithBar(icon icons.Icon, title, value string, percent float64, details string, config MetricBlockConfig) string {
	config = normalize(config)
	innerWidth := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return frame(icon, title, config, []string{
		valueStyle.Render(truncate(value, innerWidth)),
		CompactProgressBar(percent, innerWidth, config.TitleColor),
		detailStyle.Render(truncate(details, innerWidth)),
	})
}

func normalize(config MetricBlockConfig) MetricBlockConfig {
	if config.Width <= 0 {
		config.Width = 30
	}
	if config.Width < 10 {
		config.Width = 10
	}
	return config
}

// frame draws the box with its title set into the top border
func frame(icon icons.Icon, title string, config MetricBlockConfig, lines []string) string {
	innerWidth := config.Width - 4
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	titleStr := truncate(icon.String()+" "+title, innerWidth-1)
	// "┌─ " + title + " " + fill + "┐"
	fill := max(0, config.Width-5-lipgloss.Width(titleStr))
	out := []string{
		borderStyle.Render("┌─ ") + titleStyle.Render(titleStr) + borderStyle.Render(" "+strings.Repeat("─", fill)+"┐"),
	}

	for _, line := range lines {
		pad := max(0, innerWidth-lipgloss.Width(line))
		out = append(out, borderStyle.Render("│ ")+line+strings.Repeat(" ", pad)+borderStyle.Render(" │"))
	}

	out = append(out, borderStyle.Render("└"+strings.Repeat("─", config.Width-2)+"┘"))
	return strings.Join(out, "\n")
}

// truncate shortens a string to maxLen display cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:min(len(runes), max(0, maxLen))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
