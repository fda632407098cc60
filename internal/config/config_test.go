package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/hive/internal/config"
	"github.com/nikbrunner/hive/internal/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "https://api.example.com"
  token: "secret"
  timeout: "5s"
  max_retries: 4

cache:
  backend: sqlite
  path: "/tmp/hive.db"

layout:
  hex_size: 100
  horizontal_overlap: 6
  vertical_overlap: 24
  min_per_row: 4

logging:
  level: debug
  format: json

culler:
  concurrency: 4
  timeout: "2s"
  exclude_domains:
    - internal.example.com
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "secret", cfg.Backend.Token)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 4, cfg.Backend.MaxRetries)
	assert.True(t, cfg.Backend.Remote())

	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, "/tmp/hive.db", cfg.Cache.Path)

	assert.Equal(t, layout.HexConfig{Size: 100, HorizontalOverlap: 6, VerticalOverlap: 24, MinPerRow: 4}, cfg.Layout.HexConfig())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.Equal(t, 4, cfg.Culler.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Culler.Timeout)
	assert.Equal(t, []string{"internal.example.com"}, cfg.Culler.ExcludeDomains)
}

func TestLoad_MissingFieldsKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: warn
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	defaults := config.Default()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, defaults.Logging.Format, cfg.Logging.Format)
	assert.Equal(t, defaults.Backend, cfg.Backend)
	assert.Equal(t, defaults.Culler, cfg.Culler)
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout.HexConfig())
	assert.False(t, cfg.Backend.Remote())
}

func TestLoad_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "config file should have been created")

	// The written file loads back to the same config
	again, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, *cfg, *again)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("HIVE_TEST_TOKEN", "from-env")
	path := writeConfig(t, `
backend:
  base_url: "https://api.example.com"
  token: "${HIVE_TEST_TOKEN}"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Backend.Token)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "backend: [unclosed")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"bad base url", func(c *config.Config) { c.Backend.BaseURL = "ftp://example.com" }, "backend.base_url"},
		{"no local path", func(c *config.Config) { c.Backend.LocalPath = "" }, "backend.local_path"},
		{"negative timeout", func(c *config.Config) { c.Backend.Timeout = -time.Second }, "backend.timeout"},
		{"unknown cache backend", func(c *config.Config) { c.Cache.Backend = "redis" }, "cache.backend"},
		{"zero hex size", func(c *config.Config) { c.Layout.HexSize = 0 }, "layout.hex_size"},
		{"overlap too large", func(c *config.Config) { c.Layout.HorizontalOverlap = 500 }, "layout.horizontal_overlap"},
		{"negative vertical overlap", func(c *config.Config) { c.Layout.VerticalOverlap = -1 }, "layout.vertical_overlap"},
		{"min per row", func(c *config.Config) { c.Layout.MinPerRow = 0 }, "layout.min_per_row"},
		{"min per row below three", func(c *config.Config) { c.Layout.MinPerRow = 2 }, "layout.min_per_row"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"culler concurrency", func(c *config.Config) { c.Culler.Concurrency = 0 }, "culler.concurrency"},
		{"culler timeout", func(c *config.Config) { c.Culler.Timeout = 0 }, "culler.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HIVE_CONFIG", "/etc/hive.yaml")
	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/hive.yaml", path)

	t.Setenv("HIVE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err = config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "hive", "config.yaml"), path)
}

func TestSetupLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := config.SetupLogger(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.Debug("hidden")
	logger.With("component", "store").WithGroup("req").Info("loaded", "nodes", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF loaded")
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "req.nodes=3")
	assert.NotContains(t, out, "\x1b[", "no colors when not writing to a terminal")
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := config.SetupLogger(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	logger.Debug("tree loaded", "nodes", 7)

	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, `"msg":"tree loaded"`)
	assert.Contains(t, out, `"nodes":7`)
	assert.Contains(t, out, `"level":"DEBUG"`)
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "hive.log")

	f, err := config.OpenLogFile(path)
	require.NoError(t, err)
	logger := config.SetupLogger(config.LoggingConfig{Level: "info", Format: "text"}, f)
	logger.Warn("offline")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WRN offline")
}
