package config

import (
	"fmt"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
)

// Config is the application-level configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the per-user default.
	DBPath string `env:"UKPIP_DB"`

	// Lang is the initial interface language (fa, en, uk).
	Lang string `env:"UKPIP_LANG" envDefault:"en"`

	// StoreURL selects the key-value backend for answers and unlocks:
	// empty or "sqlite" for the local database, "memory", redis://, mongodb://.
	StoreURL string `env:"UKPIP_STORE_URL"`

	// LogPath receives log output while the terminal UI is running.
	LogPath string `env:"UKPIP_LOG"`

	// Debounce is the quiet period before a guidance request is sent.
	Debounce time.Duration `env:"UKPIP_DEBOUNCE" envDefault:"1s"`

	CheckoutEndpoint string `env:"UKPIP_CHECKOUT_ENDPOINT"`
	CheckoutSecret   string `env:"UKPIP_CHECKOUT_SECRET"`
	SimulateCheckout bool   `env:"UKPIP_CHECKOUT_SIMULATE"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Language returns the parsed interface language.
func (c Config) Language() i18n.Lang {
	return i18n.Parse(c.Lang)
}

// Simulated reports whether checkout runs against the in-process gateway.
func (c Config) Simulated() bool {
	return c.SimulateCheckout || c.CheckoutEndpoint == ""
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	if c.Debounce < 0 {
		return fmt.Errorf("UKPIP_DEBOUNCE must not be negative, got %s", c.Debounce)
	}
	return nil
}
