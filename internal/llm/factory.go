package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/sharpen/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and event-logging middleware. events may be nil, in which case no
// logging is attached.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller → retry → logging → base, so every
	// attempt (not just the last) lands in the event log.
	wrapped := base
	if events != nil {
		wrapped = WithLogging(wrapped, cfg.Provider, events)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a Provider from SHARPEN_* environment
// variables, falling back to discovering a bare OPENAI_API_KEY,
// ANTHROPIC_API_KEY, or GEMINI_API_KEY.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events)
}
