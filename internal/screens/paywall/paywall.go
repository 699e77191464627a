// Package paywall is the purchase screen shown before a locked module opens.
package paywall

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checkout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/router"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/components"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/layout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/ui/theme"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

// simulatedDelay is how long the demo gateway takes to "pay".
const simulatedDelay = 2 * time.Second

// checkoutRun is one attempt at paying; messages from older runs are dropped.
type checkoutRun struct {
	urls chan string
	done chan checkoutDoneMsg
}

type checkoutURLMsg struct {
	run *checkoutRun
	url string
}

type checkoutDoneMsg struct {
	run *checkoutRun
	rec unlock.Record
	err error
}

// wait blocks for the next event of the run.
func (r *checkoutRun) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case url := <-r.urls:
			return checkoutURLMsg{run: r, url: url}
		case msg := <-r.done:
			return msg
		}
	}
}

// PaywallScreen sells one module and opens next once it is paid for.
type PaywallScreen struct {
	deps  screen.Deps
	lang  i18n.Lang
	entry *content.Entry
	next  func() screen.Screen

	run    *checkoutRun
	cancel context.CancelFunc
	url    string
	notice string
	failed bool
	delay  time.Duration
}

var _ screen.Screen = (*PaywallScreen)(nil)
var _ screen.KeyHintProvider = (*PaywallScreen)(nil)

// New creates a PaywallScreen for entry. next may be nil, in which case the
// paywall closes itself after a successful payment.
func New(deps screen.Deps, entry *content.Entry, next func() screen.Screen) *PaywallScreen {
	return &PaywallScreen{
		deps:  deps,
		lang:  deps.Lang(),
		entry: entry,
		next:  next,
		delay: simulatedDelay,
	}
}

func (p *PaywallScreen) Init() tea.Cmd {
	return nil
}

func (p *PaywallScreen) Title() string {
	return i18n.T(p.lang, i18n.MsgUnlockTitle)
}

func (p *PaywallScreen) KeyHints() []layout.KeyHint {
	if p.run != nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: i18n.T(p.lang, i18n.MsgPay)},
		{Key: "Esc", Description: i18n.T(p.lang, i18n.MsgBack)},
	}
}

// Close abandons a checkout in progress.
func (p *PaywallScreen) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *PaywallScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkoutURLMsg:
		if msg.run != p.run {
			return p, nil
		}
		p.url = msg.url
		return p, msg.run.wait()

	case checkoutDoneMsg:
		if msg.run != p.run {
			return p, nil
		}
		return p, p.finish(msg)

	case tea.KeyMsg:
		if msg.String() == "enter" && p.run == nil {
			return p, p.start()
		}
	}
	return p, nil
}

// start launches the checkout flow in the background.
func (p *PaywallScreen) start() tea.Cmd {
	flow := p.deps.Checkout
	if flow == nil {
		p.failed = true
		p.notice = i18n.T(p.lang, i18n.MsgPaywall)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	run := &checkoutRun{
		urls: make(chan string, 1),
		done: make(chan checkoutDoneMsg, 1),
	}
	p.run, p.cancel = run, cancel
	p.url, p.notice, p.failed = "", "", false

	moduleID, lang, delay := p.entry.ID, p.lang, p.delay
	logger := p.deps.Log()
	simulated := flow.Simulated()
	go func() {
		rec, err := flow.Run(ctx, moduleID, lang, func(url string) {
			run.urls <- url
			if simulated {
				go visitAfter(ctx, url, delay, logger.Printf)
			}
		})
		run.done <- checkoutDoneMsg{run: run, rec: rec, err: err}
	}()
	return run.wait()
}

// visitAfter completes a simulated checkout once delay has passed.
func visitAfter(ctx context.Context, url string, delay time.Duration, logf func(string, ...any)) {
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return
	case <-t.C:
	}
	if err := checkout.Visit(ctx, url); err != nil && ctx.Err() == nil {
		logf("paywall: simulated checkout: %v", err)
	}
}

func (p *PaywallScreen) finish(msg checkoutDoneMsg) tea.Cmd {
	p.run = nil
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	switch {
	case msg.err == nil:
		p.deps.Log().Printf("paywall: %s unlocked (%d uses)", p.entry.ID, msg.rec.UsesLeft)
		if p.next == nil {
			return router.Pop()
		}
		next := p.next()
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case errors.Is(msg.err, context.Canceled):
		return nil
	case errors.Is(msg.err, checkout.ErrCancelled):
		p.notice = i18n.T(p.lang, i18n.MsgPaymentCancel)
	case errors.Is(msg.err, checkout.ErrTimeout):
		p.notice = i18n.T(p.lang, i18n.MsgPaymentTimeout)
	default:
		p.deps.Log().Printf("paywall: checkout %s: %v", p.entry.ID, msg.err)
		p.notice = msg.err.Error()
	}
	p.failed = true
	return nil
}

func (p *PaywallScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 64)
	align := layout.TextAlign(p.lang.RTL())
	inner := cw - 4
	o := offerFor(p.entry.ID)

	var b strings.Builder
	b.WriteString(layout.Wrap(theme.Heading.Render(o.Title.Get(p.lang)), inner, align))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(theme.Hint.Render(p.entry.Name.Get(p.lang)), inner, align))
	b.WriteString("\n\n")

	for _, f := range o.Features {
		b.WriteString(layout.Wrap(theme.Good.Render("✓ ")+theme.Body.Render(f.Get(p.lang)), inner, align))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Wrap(theme.Hint.Render(o.Includes.Get(p.lang)), inner, align))
	b.WriteString("\n\n")

	price := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(i18n.T(p.lang, i18n.MsgPrice, p.entry.Price()))
	b.WriteString(layout.Wrap(price, inner, align))
	b.WriteString("\n\n")

	label := i18n.T(p.lang, i18n.MsgPaySecurely, p.entry.Price())
	if p.run != nil {
		label = i18n.T(p.lang, i18n.MsgRedirecting)
	}
	b.WriteString(components.NewButton(label, p.run == nil, nil).View())

	if p.run != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(i18n.T(p.lang, i18n.MsgWaitingPayment)))
		if p.url != "" {
			b.WriteString("\n")
			link := lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(p.url)
			b.WriteString(theme.Hint.Render(i18n.T(p.lang, i18n.MsgOpenURL, link)))
		}
	}
	if p.notice != "" {
		style := theme.Good
		if p.failed {
			style = theme.Bad
		}
		b.WriteString("\n\n")
		b.WriteString(layout.Wrap(style.Render(p.notice), inner, align))
	}

	return components.Centered(components.Card(b.String(), cw), width, height)
}
