package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checker"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/checkout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/config"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/llm"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
	"github.com/spf13/cobra"
)

// env is what every command works against: configuration, the database,
// the key-value backend and the entitlement ledger.
type env struct {
	cfg     config.Config
	lang    i18n.Lang
	store   *store.Store
	kv      kv.Store
	catalog *content.Catalog
	ledger  *unlock.Ledger
	logger  *log.Logger
	closers []io.Closer
}

// openEnv loads configuration, applies flag overrides and opens the stores.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if l, _ := cmd.Flags().GetString("lang"); l != "" {
		cfg.Lang = l
	}

	dbPath := cfg.DBPath
	if p, _ := cmd.Flags().GetString("db"); p != "" || dbPath == "" {
		if dbPath, err = resolveDBPath(cmd); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e := &env{
		cfg:     cfg,
		lang:    cfg.Language(),
		store:   st,
		logger:  log.Default(),
		closers: []io.Closer{st},
	}

	backend, closer, err := kv.Open(cmd.Context(), cfg.StoreURL, st.KV())
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open answer store: %w", err)
	}
	e.kv = backend
	e.closers = append(e.closers, closer)

	e.catalog, err = content.Load()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}
	e.ledger = unlock.New(e.kv, e.catalog)
	return e, nil
}

// Close releases everything openEnv opened, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: close: %v\n", err)
		}
	}
}

// setLogger routes service warnings to l.
func (e *env) setLogger(l *log.Logger) {
	e.logger = l
	e.ledger.SetLogger(l)
}

// provider builds the configured LLM provider, logging calls to the store.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	p, _, err := llm.NewProviderFromEnv(ctx, e.store.EventRepo())
	return p, err
}

func (e *env) guidanceConfig() guidance.Config {
	cfg := guidance.DefaultConfig()
	cfg.Debounce = e.cfg.Debounce
	return cfg
}

func (e *env) newChecker(p llm.Provider) *checker.Checker {
	return checker.New(p, e.ledger, e.catalog.FormIDs(), checker.DefaultConfig())
}

// checkoutFlow builds the payment flow; without a backend endpoint (or with
// UKPIP_CHECKOUT_SIMULATE) it uses the simulated gateway.
func (e *env) checkoutFlow() (*checkout.Flow, error) {
	cfg := checkout.DefaultConfig()
	cfg.Secret = e.cfg.CheckoutSecret
	if !e.cfg.Simulated() {
		cfg.Endpoint = e.cfg.CheckoutEndpoint
	}
	flow, err := checkout.NewFlow(cfg, checkout.NewProvider(cfg), e.ledger, e.store.CheckoutRepo())
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	flow.SetLogger(e.logger)
	return flow, nil
}

// module resolves a questionnaire module id, listing the valid ids on error.
func (e *env) module(id string) (*content.Entry, error) {
	entry, err := e.catalog.Entry(id)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %v)", err, e.catalog.FormIDs())
	}
	return entry, nil
}
