package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

var (
	// ErrCancelled is returned when the user abandons the checkout.
	ErrCancelled = errors.New("checkout cancelled")
	// ErrTimeout is returned when nobody comes back before Config.Wait.
	ErrTimeout = errors.New("timed out waiting for checkout")
)

// Flow runs one purchase end to end.
type Flow struct {
	cfg      Config
	provider Provider
	signer   *Signer
	ledger   *unlock.Ledger
	sessions store.CheckoutRepo
	logger   *log.Logger

	// listen is replaced in tests to serve through httptest.
	listen func() (*Listener, error)
}

// NewFlow wires a Flow. sessions may be nil, in which case sessions are not recorded.
func NewFlow(cfg Config, provider Provider, ledger *unlock.Ledger, sessions store.CheckoutRepo) (*Flow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	signer, err := NewSigner(cfg.Secret, cfg.StateTTL)
	if err != nil {
		return nil, err
	}
	f := &Flow{
		cfg:      cfg,
		provider: provider,
		signer:   signer,
		ledger:   ledger,
		sessions: sessions,
		logger:   log.Default(),
	}
	f.listen = func() (*Listener, error) {
		l := NewListener(f.signer)
		if err := l.Start(f.cfg.ListenAddr); err != nil {
			return nil, err
		}
		return l, nil
	}
	return f, nil
}

// SetLogger routes warnings to l.
func (f *Flow) SetLogger(l *log.Logger) { f.logger = l }

// Simulated reports whether the flow uses the in-process gateway.
func (f *Flow) Simulated() bool {
	_, ok := f.provider.(SimulatedProvider)
	return ok
}

// Run opens a checkout for moduleID, passes its URL to open and waits for the
// browser to return. A paid return unlocks the module and sets the paid flag.
// A cancelled return yields ErrCancelled and changes nothing.
func (f *Flow) Run(ctx context.Context, moduleID string, lang i18n.Lang, open func(url string)) (unlock.Record, error) {
	ln, err := f.listen()
	if err != nil {
		return unlock.Record{}, err
	}
	defer ln.Close()

	state, ref, err := f.signer.Sign(moduleID)
	if err != nil {
		return unlock.Record{}, err
	}

	sess, err := f.provider.CreateSession(ctx, SessionRequest{
		ModuleID:   moduleID,
		Lang:       lang,
		SuccessURL: ln.SuccessURL(state),
		CancelURL:  ln.CancelURL(state),
	})
	if err != nil {
		return unlock.Record{}, fmt.Errorf("create checkout session: %w", err)
	}
	f.record(ctx, &store.CheckoutSession{
		ID:       sess.ID,
		ModuleID: moduleID,
		Lang:     string(lang),
		Provider: f.provider.Name(),
	})

	if open != nil {
		open(sess.URL)
	}

	wait := time.NewTimer(f.cfg.Wait)
	defer wait.Stop()
	for {
		select {
		case <-ctx.Done():
			return unlock.Record{}, ctx.Err()
		case <-wait.C:
			return unlock.Record{}, ErrTimeout
		case out := <-ln.Results():
			if out.Ref != ref || out.ModuleID != moduleID {
				f.logger.Printf("checkout: ignoring return for another session")
				continue
			}
			if out.SessionID != "" && out.SessionID != sess.ID {
				f.logger.Printf("checkout: return carried session %s, expected %s", out.SessionID, sess.ID)
			}
			if !out.Paid {
				f.complete(ctx, sess.ID, store.CheckoutCancelled)
				return unlock.Record{}, ErrCancelled
			}
			f.complete(ctx, sess.ID, store.CheckoutPaid)
			rec, err := f.ledger.Grant(ctx, moduleID)
			if err != nil {
				return unlock.Record{}, fmt.Errorf("unlock %s: %w", moduleID, err)
			}
			if err := f.ledger.MarkPaid(ctx); err != nil {
				f.logger.Printf("checkout: set paid flag: %v", err)
			}
			return rec, nil
		}
	}
}

func (f *Flow) record(ctx context.Context, s *store.CheckoutSession) {
	if f.sessions == nil {
		return
	}
	if err := f.sessions.Create(ctx, s); err != nil {
		f.logger.Printf("checkout: record session %s: %v", s.ID, err)
	}
}

func (f *Flow) complete(ctx context.Context, id string, status store.CheckoutStatus) {
	if f.sessions == nil {
		return
	}
	if err := f.sessions.Complete(ctx, id, status); err != nil {
		f.logger.Printf("checkout: mark session %s %s: %v", id, status, err)
	}
}
