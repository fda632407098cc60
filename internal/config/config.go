package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/hive/internal/layout"
)

// Config is the hive configuration file.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Cache   CacheConfig   `yaml:"cache"`
	Layout  LayoutConfig  `yaml:"layout"`
	Logging LoggingConfig `yaml:"logging"`
	Culler  CullerConfig  `yaml:"culler"`
}

// BackendConfig selects where the tree lives. Without a base url the tree
// is kept in a local JSON file.
type BackendConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	LocalPath  string        `yaml:"local_path"`
}

// Remote reports whether a backend url is configured.
func (b BackendConfig) Remote() bool {
	return b.BaseURL != ""
}

// CacheConfig holds local cache settings.
type CacheConfig struct {
	Backend string `yaml:"backend"` // file or sqlite
	Path    string `yaml:"path"`    // empty = default for the backend
}

// LayoutConfig holds the hexagon geometry in pixels.
type LayoutConfig struct {
	HexSize           int `yaml:"hex_size"`
	HorizontalOverlap int `yaml:"horizontal_overlap"`
	VerticalOverlap   int `yaml:"vertical_overlap"`
	MinPerRow         int `yaml:"min_per_row"`
}

// HexConfig converts the section for the layout package.
func (l LayoutConfig) HexConfig() layout.HexConfig {
	return layout.HexConfig{
		Size:              l.HexSize,
		HorizontalOverlap: l.HorizontalOverlap,
		VerticalOverlap:   l.VerticalOverlap,
		MinPerRow:         l.MinPerRow,
	}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // TUI log file, empty = default
}

// CullerConfig configures the dead link check.
type CullerConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
	ExcludeDomains []string      `yaml:"exclude_domains"`
}

// Default returns the configuration used for missing fields.
func Default() Config {
	hex := layout.DefaultConfig()
	return Config{
		Backend: BackendConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 2,
			LocalPath:  defaultDataPath("tree.json"),
		},
		Cache: CacheConfig{
			Backend: "file",
		},
		Layout: LayoutConfig{
			HexSize:           hex.Size,
			HorizontalOverlap: hex.HorizontalOverlap,
			VerticalOverlap:   hex.VerticalOverlap,
			MinPerRow:         hex.MinPerRow,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   defaultStatePath("hive.log"),
		},
		Culler: CullerConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// DefaultPath returns $HIVE_CONFIG, or config.yaml under the XDG config dir.
func DefaultPath() (string, error) {
	if p := os.Getenv("HIVE_CONFIG"); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hive", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hive", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file is created with
// defaults. Environment variables in the format ${VAR_NAME} are expanded
// and fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Non-fatal: defaults still apply if the file can't be written
		_ = Save(path, &cfg)
		return &cfg, nil
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

// Validate returns an error describing the first invalid field.
func (c *Config) Validate() error {
	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("backend.base_url %q must be an http(s) url", c.Backend.BaseURL)
		}
	} else if c.Backend.LocalPath == "" {
		return fmt.Errorf("backend.local_path is required without backend.base_url")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}

	if !slices.Contains([]string{"file", "sqlite"}, c.Cache.Backend) {
		return fmt.Errorf("cache.backend must be file or sqlite, got %q", c.Cache.Backend)
	}

	l := c.Layout
	if l.HexSize <= 0 {
		return fmt.Errorf("layout.hex_size must be positive")
	}
	if l.HorizontalOverlap < 0 || l.HorizontalOverlap >= l.HexSize {
		return fmt.Errorf("layout.horizontal_overlap must be between 0 and hex_size")
	}
	if l.VerticalOverlap < 0 || l.VerticalOverlap >= l.HexSize {
		return fmt.Errorf("layout.vertical_overlap must be between 0 and hex_size")
	}
	if l.MinPerRow < layout.MinTilesPerRow {
		return fmt.Errorf("layout.min_per_row must be at least %d", layout.MinTilesPerRow)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Culler.Concurrency < 1 {
		return fmt.Errorf("culler.concurrency must be at least 1")
	}
	if c.Culler.Timeout <= 0 {
		return fmt.Errorf("culler.timeout must be positive")
	}
	return nil
}

func defaultDataPath(name string) string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "hive", name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hive", name)
	}
	return filepath.Join(home, ".local", "share", "hive", name)
}

func defaultStatePath(name string) string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "hive", name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hive", name)
	}
	return filepath.Join(home, ".local", "state", "hive", name)
}
