package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// ContentWidth returns the inner width used for framed page sections so
// stacked boxes line up.
func ContentWidth(frameWidth, limit int) int {
	w := frameWidth - 6
	if w > limit {
		w = limit
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Rule is a horizontal separator line.
func Rule(width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
}

