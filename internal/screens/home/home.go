// Package home is the start screen: the list of forms with their lock state.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	checkscreen "github.com/sfmahdi38-cmd/ukpip-site/internal/screens/checker"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/form"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/paywall"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    screen.Deps
	lang    i18n.Lang
	entries []*content.Entry
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	if deps.Catalog != nil {
		h.entries = deps.Catalog.List()
	}
	h.rebuild()
	return h
}

// rebuild refreshes labels and badges, keeping the selection.
func (h *HomeScreen) rebuild() {
	h.lang = h.deps.Lang()
	selected := h.menu.Selected

	items := make([]components.MenuItem, 0, len(h.entries)+1)
	for _, e := range h.entries {
		badge, style := h.badge(e)
		items = append(items, components.MenuItem{
			Label:      e.Name.Get(h.lang),
			Badge:      badge,
			BadgeStyle: style,
			Action:     func() tea.Cmd { return h.open(e) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  i18n.T(h.lang, i18n.MsgQuit),
		Action: func() tea.Cmd { return tea.Quit },
	})

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

// badge shows the price of a locked entry, or its remaining uses.
func (h *HomeScreen) badge(e *content.Entry) (string, lipgloss.Style) {
	if h.deps.Ledger == nil {
		return "", lipgloss.NewStyle()
	}
	rec, err := h.deps.Ledger.Status(context.Background(), e.ID)
	if err != nil || !rec.Unlocked {
		return "🔒 £" + e.Price(), theme.Locked
	}
	if e.Kind == content.KindChecker {
		return i18n.T(h.lang, i18n.MsgUsesLeft, rec.UsesLeft), theme.Unlocked
	}
	return i18n.T(h.lang, i18n.MsgUnlocked), theme.Unlocked
}

// open pushes the entry's screen, behind the paywall while it is locked.
func (h *HomeScreen) open(e *content.Entry) tea.Cmd {
	deps := h.deps
	target := func() screen.Screen {
		if e.Kind == content.KindChecker {
			return checkscreen.New(deps)
		}
		return form.New(deps, e.Form)
	}
	if deps.Ledger != nil && !deps.Ledger.Unlocked(context.Background(), e.ID) {
		return router.Push(paywall.New(deps, e, target))
	}
	return router.Push(target())
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes badges after a purchase or a language change elsewhere.
func (h *HomeScreen) Resume() tea.Cmd {
	h.rebuild()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "l" {
		if h.deps.Prefs != nil {
			h.deps.Prefs.Lang = h.deps.Prefs.Lang.Next()
			h.deps.Log().Printf("home: language %s", h.deps.Prefs.Lang)
		}
		h.rebuild()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	compact := height+8 < 34 || width < 80
	cw := components.ContentWidth(width, 72)

	var sections []string
	sections = append(sections, renderTitle(h.lang, cw, compact))
	if h.deps.NewGuidance == nil {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Subtitle.Render(i18n.T(h.lang, i18n.MsgSubheader))))
	sections = append(sections, components.Card(h.menu.View(cw-4), cw))
	if h.deps.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(h.deps.LatestVersion, cw))
	}

	return components.Centered(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return i18n.T(h.lang, i18n.MsgHeader)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: i18n.T(h.lang, i18n.MsgSelectForm)},
		{Key: "L", Description: i18n.T(h.lang, i18n.MsgLanguage) + ": " + h.lang.Native()},
		{Key: "Ctrl+C", Description: i18n.T(h.lang, i18n.MsgQuit)},
	}
}
