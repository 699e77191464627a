package config

import (
	"testing"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom_Defaults(t *testing.T) {
	var c Config
	require.NoError(t, ParseEnvFrom(&c, map[string]string{}))

	assert.Equal(t, "en", c.Lang)
	assert.Equal(t, time.Second, c.Debounce)
	assert.Equal(t, i18n.English, c.Language())
	assert.True(t, c.Simulated())
	assert.NoError(t, c.Validate())
}

func TestParseEnvFrom_Overrides(t *testing.T) {
	var c Config
	require.NoError(t, ParseEnvFrom(&c, map[string]string{
		"UKPIP_LANG":              "fa",
		"UKPIP_DEBOUNCE":          "250ms",
		"UKPIP_STORE_URL":         "redis://localhost:6379/0",
		"UKPIP_CHECKOUT_ENDPOINT": "https://example.test/api/checkout_sessions",
	}))

	assert.Equal(t, i18n.Farsi, c.Language())
	assert.Equal(t, 250*time.Millisecond, c.Debounce)
	assert.Equal(t, "redis://localhost:6379/0", c.StoreURL)
	assert.False(t, c.Simulated())
}

func TestParseEnvFrom_Invalid(t *testing.T) {
	var c Config
	err := ParseEnvFrom(&c, map[string]string{"UKPIP_DEBOUNCE": "soon"})
	assert.ErrorContains(t, err, "parse env")

	c = Config{Debounce: -time.Second}
	assert.Error(t, c.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("UKPIP_LANG", "uk")
	t.Setenv("UKPIP_CHECKOUT_SIMULATE", "true")
	t.Setenv("UKPIP_CHECKOUT_ENDPOINT", "https://example.test")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, i18n.Ukrainian, c.Language())
	assert.True(t, c.Simulated())
}
