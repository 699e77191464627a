package llm

import (
	"context"
	"fmt"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped so that
// every attempt is recorded and transient failures are retried:
// caller → retry → logging → vendor.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, cfg.Provider, eventRepo)
	}
	return WithRetry(p, cfg.Retry), nil
}

// NewProviderFromEnv reads the configuration from the environment, checks
// it and builds the provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo)
	return p, cfg, err
}
