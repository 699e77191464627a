// Package welcome is the splash screen shown before the form list.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const formArt = `  ┌──────────┐
  │ ▬▬▬▬▬▬   │
  │ ☐ ▬▬▬▬▬  │
  │ ☐ ▬▬▬▬   │
  │ ☐ ▬▬▬▬▬▬ │
  └──────────┘`

// checkRows are the lines of formArt whose boxes get ticked one by one.
var checkRows = []int{2, 3, 4}

type tickMsg time.Time

// WelcomeScreen ticks the boxes of a small form, then shows the banner and
// waits for a key before handing over to the home screen.
type WelcomeScreen struct {
	lang         i18n.Lang
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(l i18n.Lang, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		lang:        l,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// ticked is the number of boxes checked so far.
func (w *WelcomeScreen) ticked() int {
	if w.elapsed < phase1End {
		return 0
	}
	n := int((w.elapsed-phase1End)/((phase2End-phase1End)/time.Duration(len(checkRows)))) + 1
	return min(n, len(checkRows))
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	lines := strings.Split(formArt, "\n")
	check := lipgloss.NewStyle().Foreground(theme.Success).Render("☑")
	for i := 0; i < w.ticked(); i++ {
		lines[checkRows[i]] = strings.Replace(lines[checkRows[i]], "☐", check, 1)
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Join(lines, "\n")))

	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(i18n.T(w.lang, i18n.MsgTagline))
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(i18n.T(w.lang, i18n.MsgPressAnyKey))
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
