package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/config"
)

// EnvPrefix is prepended to every variable ConfigFromEnv reads, e.g.
// UKPIP_LLM_PROVIDER or UKPIP_LLM_GEMINI_API_KEY.
const EnvPrefix = "UKPIP_LLM_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: "gemini", "anthropic", "openai",
	// "openrouter" or "mock". Empty means discover from API key variables.
	Provider string `env:"PROVIDER"`

	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"RETRY_"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`
}

type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"` // OpenAI-compatible endpoint override.
}

type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// standardKeys are the vendor API key variables, in discovery order.
var standardKeys = []struct {
	provider string
	env      string
}{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// ConfigFromEnv reads the UKPIP_LLM_* variables. Keys missing there fall
// back to the vendor's standard variable; with no provider configured the
// first vendor key found picks the provider, and gemini is the default.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnvPrefix(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}

	for _, k := range standardKeys {
		v := os.Getenv(k.env)
		if v == "" {
			continue
		}
		if key := cfg.apiKey(k.provider); *key == "" {
			*key = v
		}
		if cfg.Provider == "" {
			cfg.Provider = k.provider
		}
	}
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	return cfg, nil
}

// DiscoverConfig probes the vendor API key variables in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a default Config for
// the first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, k := range standardKeys {
		if v := os.Getenv(k.env); v != "" {
			cfg.Provider = k.provider
			*cfg.apiKey(k.provider) = v
			return cfg, true
		}
	}
	return Config{}, false
}

func (c *Config) apiKey(provider string) *string {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	default:
		return &c.Gemini.APIKey
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "anthropic", "openai", "openrouter":
		if *c.apiKey(c.Provider) == "" {
			return fmt.Errorf("an API key is required for the %s provider (set %s%s_API_KEY)",
				c.Provider, EnvPrefix, strings.ToUpper(c.Provider))
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
