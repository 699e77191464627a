package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/home"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screens/welcome"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "stub" }
func (s *stubScreen) Title() string                          { return "Stub" }

func testDeps() screen.Deps {
	catalog := content.MustLoad()
	store := kv.NewMemory()
	return screen.Deps{
		Catalog: catalog,
		Store:   store,
		Ledger:  unlock.New(store, catalog),
		Prefs:   &screen.Prefs{Lang: i18n.English},
	}
}

func TestStartScreen(t *testing.T) {
	m := newAppModel(testDeps(), false)
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
	assert.NotNil(t, m.Init(), "splash starts ticking")

	m = newAppModel(testDeps(), true)
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestEscPops(t *testing.T) {
	m := newAppModel(testDeps(), true)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the bottom screen does nothing")

	m.Update(router.PushScreenMsg{Screen: &stubScreen{}})
	require.Equal(t, 2, m.router.Depth())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testDeps(), true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSize(t *testing.T) {
	m := newAppModel(testDeps(), true)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	am := updated.(AppModel)
	assert.Equal(t, 100, am.width)
	assert.Equal(t, 40, am.height)
}

func TestStatus(t *testing.T) {
	deps := testDeps()
	m := newAppModel(deps, true)
	assert.Equal(t, "English  ", m.status())

	require.NoError(t, deps.Ledger.MarkPaid(context.Background()))
	deps.Prefs.Lang = i18n.Farsi
	assert.Equal(t, "✓ فارسی  ", m.status())
}

func TestHints(t *testing.T) {
	m := newAppModel(testDeps(), true)
	hints := m.hints()
	require.Len(t, hints, 4)
	assert.Equal(t, "Language: English", hints[2].Description)

	m.Update(router.PushScreenMsg{Screen: &stubScreen{}})
	hints = m.hints()
	require.Len(t, hints, 2)
	assert.Equal(t, "Esc", hints[0].Key)
}
