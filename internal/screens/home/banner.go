package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/welcome"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// renderTitle returns the block-letter title, or the plain header text on
// small terminals, followed by the tagline.
func renderTitle(l i18n.Lang, cw int, compact bool) string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	title := welcome.RenderBanner(cw)
	if compact {
		title = style.Render(i18n.T(l, i18n.MsgHeader))
	}
	tagline := lipgloss.NewStyle().Foreground(theme.Secondary).Render(i18n.T(l, i18n.MsgTagline))
	return center.Render(title) + "\n" + center.Render(tagline)
}

// renderLLMBanner warns that no model is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to get AI guidance (see ukpip --help)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available (ukpip update)", latestVersion))
}
