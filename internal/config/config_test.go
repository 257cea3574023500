package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, 64, cfg.Printing.ChunkSize)
	assert.Equal(t, 2*time.Second, cfg.Printing.SettleDelay)
	assert.Equal(t, "lp", cfg.Spooler.Binary)
	assert.Equal(t, 90, cfg.Database.RetentionDays)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
printing:
  chunk_size: 128
bridge:
  url: http://localhost:5000/print
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 128, cfg.Printing.ChunkSize)
	assert.Equal(t, "http://localhost:5000/print", cfg.Bridge.URL)
	// Untouched sections keep their defaults.
	assert.Equal(t, "./data/printd.db", cfg.Database.Path)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"zero chunk size", func(c *Config) { c.Printing.ChunkSize = 0 }},
		{"webhook url without secret", func(c *Config) { c.Webhook.URL = "http://hook" }},
		{"auth password without jwt secret", func(c *Config) { c.Auth.PasswordHash = "$2a$10$hash" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty render dir", func(c *Config) { c.Render.OutputDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := defaults()
	cfg.Webhook.URL = "http://hook"
	cfg.Webhook.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg = defaults()
	cfg.Auth.PasswordHash = "$2a$10$hash"
	cfg.Auth.JWTSecret = "signing-secret"
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PRINTD_PORT", "7001")
	t.Setenv("PRINTD_BRIDGE_URL", "http://bridge:9100")

	cfg := LoadFromEnv()
	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "http://bridge:9100", cfg.Bridge.URL)
}
