package llm

import "os"

// Provider represents a completion service provider.
type Provider string

// Supported providers. Ollama is the default: a locally hosted model
// service reached over HTTP. Gemini is an explicit configuration choice;
// there is no automatic fallback between providers.
const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// Default connection values for the local Ollama service.
const (
	DefaultOllamaHost = "http://localhost:11434"
	DefaultModel      = "llama3"
)

// Config holds the completion client configuration.
type Config struct {
	Provider Provider
	Model    string
	Host     string // Ollama base URL
	APIKey   string // Gemini only
}

// DefaultConfig returns the default configuration: the local Ollama
// service, with model and host overridable via environment.
func DefaultConfig() *Config {
	cfg := &Config{
		Provider: ProviderOllama,
		Model:    DefaultModel,
		Host:     DefaultOllamaHost,
	}
	if model := os.Getenv("JOBKIT_MODEL"); model != "" {
		cfg.Model = model
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.Host = host
	}
	return cfg
}
