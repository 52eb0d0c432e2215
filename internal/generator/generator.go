// Package generator abstracts the external text-generation call.
//
// The output of any provider is untrusted: callers must JSON-parse it
// defensively and run it through language enforcement and content
// validation before using it.
package generator

import (
	"context"
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-sonnet-20241022"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultMaxTokens        = 1024
	defaultTemperature      = 0.7
	defaultTimeout          = 60 * time.Second
	defaultMaxRetries       = 3
	defaultBaseBackoff      = 1 * time.Second
)

// Rate limiter defaults: 50 requests per minute.
const (
	defaultRateLimit = 50.0 / 60.0
	defaultBurst     = 5
)

// ModelConfig sets the per-call generation parameters.
type ModelConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func (c ModelConfig) withDefaults(model string) ModelConfig {
	if c.Model == "" {
		c.Model = model
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
	return c
}

// Generator produces raw text from a prompt pair.
type Generator interface {
	// Generate invokes the external model. The returned text is raw and
	// untrusted.
	Generate(ctx context.Context, systemPrompt, userMessage string, cfg ModelConfig) (string, error)

	// ModelVersion identifies the model for audit stamps on persisted
	// summaries.
	ModelVersion() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string // anthropic, openai, or fixture
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// New creates a generator for the configured provider.
func New(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "anthropic", "":
		return newAnthropicGenerator(cfg)
	case "openai":
		return newOpenAIGenerator(cfg)
	case "fixture":
		return NewFixtureGenerator(), nil
	}
	return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
}
