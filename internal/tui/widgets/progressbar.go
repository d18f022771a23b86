// ABOUTME: Progress bar widgets for the payment cycle countdown
// ABOUTME: Renders bracketed and compact bars that fill toward payday

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
	DueColor    lipgloss.Color // Fill color once DueAt is reached
	DueAt       float64        // Percentage where the bar switches to DueColor
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:       20,
		FilledColor: lipgloss.Color("#0EA5E9"), // Sky
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
		DueColor:    lipgloss.Color("#10B981"), // Green
		DueAt:       85,
	}
}

func clampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// filledCells returns how many of width cells percent covers
func filledCells(percent float64, width int) int {
	filled := int(clampPercent(percent) / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	return filled
}

// ProgressBar renders a bracketed progress bar
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	fillColor := config.FilledColor
	if config.DueAt > 0 && percent >= config.DueAt {
		fillColor = config.DueColor
	}

	filled := filledCells(percent, config.Width)
	filledStyle := lipgloss.NewStyle().Foreground(fillColor)
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(emptyStyle.Render(strings.Repeat("░", config.Width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by its percentage
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	return fmt.Sprintf("%s %3.0f%%", ProgressBar(percent, config), clampPercent(percent))
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	filled := filledCells(percent, width)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}
