package screen

import (
	"io"
	"log"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checker"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/checkout"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/kv"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
)

// Prefs are the user settings shared by every screen. They are only touched
// from the UI goroutine.
type Prefs struct {
	Lang i18n.Lang
}

// Deps are the services screens are built from.
type Deps struct {
	Catalog *content.Catalog
	Store   kv.Store
	Ledger  *unlock.Ledger
	// NewGuidance starts a guidance service for one form; nil when no
	// model is configured.
	NewGuidance func() *guidance.Service
	// Checker is nil when no model is configured.
	Checker  *checker.Checker
	Checkout *checkout.Flow
	Prefs    *Prefs
	Logger   *log.Logger
	// LatestVersion is set when a newer release is available.
	LatestVersion string
}

// Lang returns the current interface language.
func (d Deps) Lang() i18n.Lang {
	if d.Prefs == nil {
		return i18n.Default
	}
	return d.Prefs.Lang
}

// Log returns the logger, discarding output when none is set.
func (d Deps) Log() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return d.Logger
}
