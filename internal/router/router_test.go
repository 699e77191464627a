package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	resumed int
	last    tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type resumingScreen struct{ stubScreen }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return nil
}

type closingScreen struct {
	stubScreen
	closed int
}

func (s *closingScreen) Close() { s.closed++ }

type ping struct{}

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "second", r.Active().Title())
	assert.True(t, s2.initRan)
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Push(&stubScreen{title: "second"})
	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "first", r.Active().Title())
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Pop()
	assert.Equal(t, 1, r.Depth())
}

func TestPopResumes(t *testing.T) {
	home := &resumingScreen{stubScreen{title: "home"}}
	r := New(home)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "form"}})
	r.Update(PopScreenMsg{})

	assert.Equal(t, 1, home.resumed)
	assert.Equal(t, "home", r.View(80, 24))
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Push(&stubScreen{title: "paywall"})

	s3 := &stubScreen{title: "form"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "form", r.Active().Title())
	assert.True(t, s3.initRan)
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &stubScreen{title: "second"}
	r := New(s1)
	r.Push(s2)

	r.Update(ping{})

	assert.Nil(t, s1.last)
	assert.Equal(t, ping{}, s2.last)
}

func TestCommands(t *testing.T) {
	s := &stubScreen{title: "x"}
	msg := Push(s)()
	require.IsType(t, PushScreenMsg{}, msg)
	assert.Same(t, s, msg.(PushScreenMsg).Screen)
	assert.Equal(t, PopScreenMsg{}, Pop()())
}

func TestPopAndReplaceClose(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	form := &closingScreen{stubScreen: stubScreen{title: "form"}}
	r.Push(form)
	r.Pop()
	assert.Equal(t, 1, form.closed)

	paywall := &closingScreen{stubScreen: stubScreen{title: "paywall"}}
	r.Push(paywall)
	next := &closingScreen{stubScreen: stubScreen{title: "form"}}
	r.Replace(next)
	assert.Equal(t, 1, paywall.closed)

	r.CloseAll()
	assert.Equal(t, 1, next.closed)
}
