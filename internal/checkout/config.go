package checkout

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds checkout settings.
type Config struct {
	// Endpoint is the checkout backend URL. Empty selects the simulated gateway.
	Endpoint string
	// Secret signs the state token carried on the return URLs. Empty means a
	// random per-process key.
	Secret string
	// ListenAddr is where the return listener binds.
	ListenAddr string
	// Wait bounds how long Run waits for the browser to come back.
	Wait time.Duration
	// StateTTL is the lifetime of a state token.
	StateTTL time.Duration
	// HTTPTimeout bounds one call to the backend.
	HTTPTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  "127.0.0.1:0",
		Wait:        15 * time.Minute,
		StateTTL:    30 * time.Minute,
		HTTPTimeout: 30 * time.Second,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("checkout endpoint %q is not an absolute URL", c.Endpoint)
		}
	}
	if c.Wait <= 0 {
		return fmt.Errorf("wait must be positive, got %s", c.Wait)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("state ttl must be positive, got %s", c.StateTTL)
	}
	return nil
}
