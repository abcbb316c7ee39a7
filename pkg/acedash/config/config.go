// Package config loads acedash settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/acedash-go/pkg/acedash/generator"
)

// Source kinds.
const (
	SourceSheets   = "sheets"
	SourceWorkbook = "workbook"
)

// Config is the complete application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`

	// Tables maps table roles (identity, staff, student, teacher) to sheet names.
	Tables map[string]string `yaml:"tables"`
	// Fields maps "<role>.<field>" to a header label.
	Fields map[string]string `yaml:"fields,omitempty"`

	Log LogConfig `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	StaticDir       string          `yaml:"static_dir"`
	MaxBodyBytes    int64           `yaml:"max_body_bytes"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
	CORS            bool            `yaml:"cors"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout"`
}

// RateLimitConfig allows Requests per Window for each client on /api/.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// SourceConfig selects and tunes the table provider.
type SourceConfig struct {
	Kind          string `yaml:"kind"` // sheets, workbook
	SpreadsheetID string `yaml:"spreadsheet_id"`
	WorkbookPath  string `yaml:"workbook_path"`
	BaseURL       string `yaml:"base_url"`
	UserAgent     string `yaml:"user_agent"`

	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	MaxRetries        int           `yaml:"max_retries"`
}

// CacheConfig configures the table cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	tables := make(map[string]string)
	for role, name := range generator.DefaultTableNames() {
		tables[string(role)] = name
	}
	return &Config{
		Server: ServerConfig{
			Addr:         ":3000",
			StaticDir:    "client/dist",
			MaxBodyBytes: 10 << 10,
			RateLimit: RateLimitConfig{
				Requests: 100,
				Window:   15 * time.Minute,
			},
			CORS:            true,
			ShutdownTimeout: 10 * time.Second,
		},
		Source: SourceConfig{
			Kind:              SourceSheets,
			SpreadsheetID:     "1OMjAbOwTssGqKHBC0oM-C-ds17MgMQbPsWCfH2bemjY",
			BaseURL:           "https://docs.google.com",
			UserAgent:         "acedash/1.0",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             4,
			MaxRetries:        3,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Tables: tables,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults and
// applies environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if id := os.Getenv("ACEDASH_SPREADSHEET_ID"); id != "" {
		c.Source.SpreadsheetID = id
		c.Source.Kind = SourceSheets
	}
	// a local workbook wins over a spreadsheet id
	if path := os.Getenv("ACEDASH_WORKBOOK"); path != "" {
		c.Source.WorkbookPath = path
		c.Source.Kind = SourceWorkbook
	}
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceSheets:
		if c.Source.SpreadsheetID == "" {
			return fmt.Errorf("source.spreadsheet_id is required for the sheets source")
		}
		if c.Source.RequestsPerSecond <= 0 {
			return fmt.Errorf("source.requests_per_second must be positive, got %v", c.Source.RequestsPerSecond)
		}
		if c.Source.MaxRetries < 0 {
			return fmt.Errorf("source.max_retries cannot be negative, got %d", c.Source.MaxRetries)
		}
	case SourceWorkbook:
		if c.Source.WorkbookPath == "" {
			return fmt.Errorf("source.workbook_path is required for the workbook source")
		}
	default:
		return fmt.Errorf("source.kind must be %q or %q, got %q", SourceSheets, SourceWorkbook, c.Source.Kind)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.RateLimit.Requests <= 0 || c.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("server.rate_limit needs positive requests and window")
	}
	if c.Cache.Enabled && (c.Cache.TTL <= 0 || c.Cache.CleanupInterval <= 0) {
		return fmt.Errorf("cache.ttl and cache.cleanup_interval must be positive")
	}

	roles := make(map[string]bool)
	for _, r := range generator.Roles {
		roles[string(r)] = true
	}
	for role := range c.Tables {
		if !roles[role] {
			return fmt.Errorf("tables: unknown table role %q", role)
		}
	}
	fields := make(map[string]bool)
	for _, f := range generator.Fields() {
		fields[f.Name] = true
	}
	for name := range c.Fields {
		if !fields[name] {
			return fmt.Errorf("fields: unknown field %q", name)
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// TableNames returns the configured sheet names by role.
func (c *Config) TableNames() generator.TableNames {
	names := generator.DefaultTableNames()
	for role, name := range c.Tables {
		names[generator.Role(role)] = name
	}
	return names
}

// FieldOverrides returns the configured header labels.
func (c *Config) FieldOverrides() generator.Overrides {
	if len(c.Fields) == 0 {
		return nil
	}
	o := make(generator.Overrides, len(c.Fields))
	for name, label := range c.Fields {
		o[name] = label
	}
	return o
}

// Build creates the logger described by l. verbose forces debug level.
func (l LogConfig) Build(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}
