// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty"`    // Path to job posting text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job posting from

	// Model
	Provider     string `json:"provider,omitempty"`       // Completion provider: ollama or gemini
	Model        string `json:"model,omitempty"`          // Model name
	OllamaHost   string `json:"ollama_host,omitempty"`    // Ollama base URL
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key

	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory for job packages

	// Budgets
	MaxArtifactAttempts      int `json:"max_artifact_attempts,omitempty"`      // Generation attempts per artifact
	TransportRetries         int `json:"transport_retries,omitempty"`          // Extra tries after a transport failure
	CompletionTimeoutSeconds int `json:"completion_timeout_seconds,omitempty"` // Per-call completion timeout

	// Behavior
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA job pages
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Provider != "" && c.Provider != "ollama" && c.Provider != "gemini" {
		return fmt.Errorf("config error: 'provider' must be ollama or gemini, got %q", c.Provider)
	}
	if c.MaxArtifactAttempts < 0 {
		return fmt.Errorf("config error: 'max_artifact_attempts' must be non-negative")
	}
	if c.TransportRetries < 0 {
		return fmt.Errorf("config error: 'transport_retries' must be non-negative")
	}
	if c.CompletionTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'completion_timeout_seconds' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.OllamaHost == "" {
		result.OllamaHost = defaults.OllamaHost
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.MaxArtifactAttempts == 0 {
		result.MaxArtifactAttempts = defaults.MaxArtifactAttempts
	}
	if result.TransportRetries == 0 {
		result.TransportRetries = defaults.TransportRetries
	}
	if result.CompletionTimeoutSeconds == 0 {
		result.CompletionTimeoutSeconds = defaults.CompletionTimeoutSeconds
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
