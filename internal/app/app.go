// Package app is the root Bubble Tea model: a screen stack framed by a header
// and a footer of key hints.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/home"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/welcome"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome splash, or
// directly on the home screen when skipSplash is set.
func newAppModel(deps screen.Deps, skipSplash bool) AppModel {
	homeFactory := func() screen.Screen { return home.New(deps) }
	var first screen.Screen = welcome.New(deps.Lang(), homeFactory)
	if skipSplash {
		first = homeFactory()
	}
	return AppModel{
		deps:   deps,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status is the right side of the header: interface language and whether a
// payment has been made on this machine.
func (m AppModel) status() string {
	s := m.deps.Lang().Native()
	if m.deps.Ledger != nil && m.deps.Ledger.Paid(context.Background()) {
		s = "✓ " + s
	}
	return s + "  "
}

func (m AppModel) hints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Options tune how the program starts.
type Options struct {
	SkipSplash bool
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, deps screen.Deps, opts Options) error {
	m := newAppModel(deps, opts.SkipSplash)
	defer m.router.CloseAll()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
