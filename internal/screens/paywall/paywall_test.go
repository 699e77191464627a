package paywall

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checkout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

type cancellingProvider struct{}

func (cancellingProvider) Name() string { return "test" }

func (cancellingProvider) CreateSession(_ context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	return &checkout.Session{ID: "cs_cancel", URL: req.CancelURL}, nil
}

type nextScreen struct{}

func (nextScreen) Init() tea.Cmd { return nil }

func (n nextScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return n, nil }

func (nextScreen) View(int, int) string { return "next" }

func (nextScreen) Title() string { return "Next" }

func newDeps(t *testing.T, p checkout.Provider) (screen.Deps, *unlock.Ledger) {
	t.Helper()
	catalog := content.MustLoad()
	ledger := unlock.New(kv.NewMemory(), catalog)
	cfg := checkout.DefaultConfig()
	cfg.Wait = 5 * time.Second
	flow, err := checkout.NewFlow(cfg, p, ledger, nil)
	require.NoError(t, err)
	flow.SetLogger(log.New(io.Discard, "", 0))
	return screen.Deps{
		Catalog:  catalog,
		Ledger:   ledger,
		Checkout: flow,
		Prefs:    &screen.Prefs{Lang: i18n.English},
	}, ledger
}

func entry(t *testing.T, deps screen.Deps, id string) *content.Entry {
	t.Helper()
	e, err := deps.Catalog.Entry(id)
	require.NoError(t, err)
	return e
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestPaywall_View(t *testing.T) {
	deps, _ := newDeps(t, checkout.SimulatedProvider{})

	tests := []struct {
		id    string
		title string
		price string
	}{
		{"pip", "Unlock the PIP Form Assistant", "£29.99"},
		{content.FormChecker, "Unlock the Form Checker", "£9.99"},
		{"uc", "Unlock the Form Assistant", "£14.99"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p := New(deps, entry(t, deps, tt.id), nil)
			view := p.View(100, 40)
			assert.Contains(t, view, tt.title)
			assert.Contains(t, view, "Pay Securely "+tt.price)
		})
	}
}

func TestPaywall_SimulatedPayment(t *testing.T) {
	deps, ledger := newDeps(t, checkout.SimulatedProvider{})
	p := New(deps, entry(t, deps, "uc"), func() screen.Screen { return nextScreen{} })
	p.delay = 0
	t.Cleanup(p.Close)

	_, cmd := p.Update(enter())
	require.NotNil(t, cmd)
	assert.Contains(t, p.View(100, 40), i18n.T(i18n.English, i18n.MsgRedirecting))
	assert.Len(t, p.KeyHints(), 1)

	msg := cmd()
	urlMsg, ok := msg.(checkoutURLMsg)
	require.True(t, ok)
	assert.Contains(t, urlMsg.url, "/checkout/success")

	_, cmd = p.Update(urlMsg)
	require.NotNil(t, cmd)
	assert.Equal(t, urlMsg.url, p.url)

	done, ok := cmd().(checkoutDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	_, cmd = p.Update(done)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, nextScreen{}, replace.Screen)

	assert.True(t, ledger.Unlocked(context.Background(), "uc"))
	assert.True(t, ledger.Paid(context.Background()))
}

func TestPaywall_PaidWithoutNextPops(t *testing.T) {
	deps, _ := newDeps(t, checkout.SimulatedProvider{})
	p := New(deps, entry(t, deps, content.FormChecker), nil)
	p.delay = 0
	t.Cleanup(p.Close)

	_, cmd := p.Update(enter())
	_, cmd = p.Update(cmd())
	_, cmd = p.Update(cmd())
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestPaywall_Cancelled(t *testing.T) {
	deps, ledger := newDeps(t, cancellingProvider{})
	p := New(deps, entry(t, deps, "pip"), func() screen.Screen { return nextScreen{} })
	t.Cleanup(p.Close)

	_, cmd := p.Update(enter())
	urlMsg, ok := cmd().(checkoutURLMsg)
	require.True(t, ok)

	// Not simulated, so nobody follows the link until we do.
	_, cmd = p.Update(urlMsg)
	require.NoError(t, checkout.Visit(context.Background(), urlMsg.url))

	_, cmd = p.Update(cmd())
	assert.Nil(t, cmd)
	assert.Nil(t, p.run)
	assert.Contains(t, p.View(100, 40), i18n.T(i18n.English, i18n.MsgPaymentCancel))
	assert.False(t, ledger.Unlocked(context.Background(), "pip"))

	// A second attempt is allowed.
	_, cmd = p.Update(enter())
	assert.NotNil(t, cmd)
}

func TestPaywall_StaleRunIgnored(t *testing.T) {
	deps, _ := newDeps(t, checkout.SimulatedProvider{})
	p := New(deps, entry(t, deps, "uc"), nil)

	_, cmd := p.Update(checkoutDoneMsg{run: &checkoutRun{}})
	assert.Nil(t, cmd)
	_, cmd = p.Update(checkoutURLMsg{run: &checkoutRun{}, url: "http://x"})
	assert.Nil(t, cmd)
	assert.Empty(t, p.url)
}

func TestPaywall_NoCheckout(t *testing.T) {
	deps, _ := newDeps(t, checkout.SimulatedProvider{})
	deps.Checkout = nil
	p := New(deps, entry(t, deps, "uc"), nil)

	_, cmd := p.Update(enter())
	assert.Nil(t, cmd)
	assert.True(t, p.failed)
	assert.Contains(t, p.View(100, 40), i18n.T(i18n.English, i18n.MsgPaywall))
}

func TestPaywall_CloseAbandons(t *testing.T) {
	deps, ledger := newDeps(t, cancellingProvider{})
	p := New(deps, entry(t, deps, "pip"), nil)

	_, cmd := p.Update(enter())
	_, cmd = p.Update(cmd())
	p.Close()

	done, ok := cmd().(checkoutDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, context.Canceled)

	_, cmd = p.Update(done)
	assert.Nil(t, cmd)
	assert.False(t, p.failed)
	assert.False(t, ledger.Unlocked(context.Background(), "pip"))
}
