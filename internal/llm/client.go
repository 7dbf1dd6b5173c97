package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over completion providers. A call is a single
// blocking request; cancellation and deadlines come from the context.
type Client interface {
	// Complete sends a prompt to the model and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model returns the configured model identifier.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a completion client based on configuration.
func NewClient(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, model, cfg.APIKey)
	case ProviderOllama, "":
		return NewOllamaClient(cfg.Host, model), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
