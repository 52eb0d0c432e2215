package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "generator:\n  provider: fixture\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "dailyLogs", cfg.Firestore.DailyCollection)
	assert.Equal(t, 3, cfg.Coaching.MaxAttempts)
	assert.Equal(t, 14, cfg.Coaching.LookbackDays)
	assert.Equal(t, 45*time.Second, cfg.Coaching.AttemptTimeout.Duration())
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
logging:
  level: debug
  format: console
firestore:
  project_id: coach-prod
generator:
  provider: anthropic
  api_key: sk-test
coaching:
  max_attempts: 5
  attempt_timeout: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "coach-prod", cfg.Firestore.ProjectID)
	assert.Equal(t, 5, cfg.Coaching.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Coaching.AttemptTimeout.Duration())
	assert.Equal(t, "sk-test", cfg.Generator.APIKey.Value())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\ngenerator:\n  provider: fixture\n")
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadIgnoresUnknownEnvPrefixes(t *testing.T) {
	path := writeConfig(t, "generator:\n  provider: fixture\n")
	t.Setenv("HOME_DIR", "/nowhere")
	t.Setenv("PATH_EXTRA", "/nope")

	_, err := Load(path)
	assert.NoError(t, err)
}

func TestLoadRejectsWorldReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  provider: fixture\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0600")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing api key", "generator:\n  provider: anthropic\nfirestore:\n  project_id: p\n"},
		{"missing project id", "generator:\n  provider: anthropic\n  api_key: sk\n"},
		{"unknown provider", "generator:\n  provider: carrier-pigeon\n"},
		{"bad log format", "logging:\n  format: xml\ngenerator:\n  provider: fixture\n"},
		{"bad port", "server:\n  port: 70000\ngenerator:\n  provider: fixture\n"},
		{"max attempts out of range", "coaching:\n  max_attempts: 50\ngenerator:\n  provider: fixture\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("sk-very-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "sk-very-secret", s.Value())

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "very-secret")

	assert.Equal(t, "", Secret("").String())
	assert.False(t, Secret("").IsSet())
}

func TestDurationParsing(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("-5s")))
	assert.Error(t, d.UnmarshalText([]byte("ninety")))
}
