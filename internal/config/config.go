// Package config provides configuration loading for coachd.
//
// Configuration is loaded from a YAML file with environment variable
// overrides. See Load for precedence rules.
package config

import (
	"fmt"
	"time"
)

// Config holds the complete coachd configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Firestore FirestoreConfig `koanf:"firestore"`
	Generator GeneratorConfig `koanf:"generator"`
	Coaching  CoachingConfig  `koanf:"coaching"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// FirestoreConfig holds document store configuration.
type FirestoreConfig struct {
	ProjectID           string `koanf:"project_id"`
	DailyCollection     string `koanf:"daily_collection"`
	SummariesCollection string `koanf:"summaries_collection"`
}

// GeneratorConfig holds external text generator configuration.
type GeneratorConfig struct {
	Provider    string   `koanf:"provider"` // anthropic, openai, or fixture
	APIKey      Secret   `koanf:"api_key"`
	BaseURL     string   `koanf:"base_url"`
	Model       string   `koanf:"model"`
	MaxTokens   int      `koanf:"max_tokens"`
	Temperature float64  `koanf:"temperature"`
	Timeout     Duration `koanf:"timeout"`
}

// CoachingConfig tunes the generation pipeline.
type CoachingConfig struct {
	MaxAttempts    int      `koanf:"max_attempts"`
	LookbackDays   int      `koanf:"lookback_days"`
	AttemptTimeout Duration `koanf:"attempt_timeout"`
	RulesPath      string   `koanf:"rules_path"` // optional language rule override file
}

// Default returns the hardcoded defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8085,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Firestore: FirestoreConfig{
			DailyCollection:     "dailyLogs",
			SummariesCollection: "weeklySummaries",
		},
		Generator: GeneratorConfig{
			Provider:    "anthropic",
			MaxTokens:   1024,
			Temperature: 0.7,
			Timeout:     Duration(60 * time.Second),
		},
		Coaching: CoachingConfig{
			MaxAttempts:    3,
			LookbackDays:   14,
			AttemptTimeout: Duration(45 * time.Second),
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	switch c.Generator.Provider {
	case "anthropic", "openai":
		if !c.Generator.APIKey.IsSet() {
			return fmt.Errorf("generator.api_key is required for provider %s", c.Generator.Provider)
		}
	case "fixture":
	default:
		return fmt.Errorf("unknown generator.provider %q", c.Generator.Provider)
	}
	if c.Generator.Provider != "fixture" && c.Firestore.ProjectID == "" {
		return fmt.Errorf("firestore.project_id is required")
	}
	if c.Coaching.MaxAttempts < 1 || c.Coaching.MaxAttempts > 10 {
		return fmt.Errorf("coaching.max_attempts must be in 1-10, got %d", c.Coaching.MaxAttempts)
	}
	if c.Coaching.LookbackDays < 7 || c.Coaching.LookbackDays > 60 {
		return fmt.Errorf("coaching.lookback_days must be in 7-60, got %d", c.Coaching.LookbackDays)
	}
	return nil
}
