package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/acedash-go/pkg/acedash/generator"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("ACEDASH_SPREADSHEET_ID", "")
	t.Setenv("ACEDASH_WORKBOOK", "")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, int64(10240), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 100, cfg.Server.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.Server.RateLimit.Window)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CleanupInterval)
	assert.Equal(t, generator.DefaultTableNames(), cfg.TableNames())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "acedash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":8080"
  rate_limit:
    requests: 10
    window: 1m
source:
  kind: workbook
  workbook_path: ./registrations.xlsx
cache:
  ttl: 30m
tables:
  teacher: 教師
fields:
  identity.date: 報名時間
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
	assert.Equal(t, int64(10240), cfg.Server.MaxBodyBytes, "unset keys keep defaults")
	assert.Equal(t, SourceWorkbook, cfg.Source.Kind)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "教師", cfg.TableNames()[generator.RoleTeacher])
	assert.Equal(t, "身分數據", cfg.TableNames()[generator.RoleIdentity])
	assert.Equal(t, generator.Overrides{"identity.date": "報名時間"}, cfg.FieldOverrides())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("PORT sets the listen address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "8081")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, ":8081", cfg.Server.Addr)
	})

	t.Run("spreadsheet id selects sheets", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ACEDASH_SPREADSHEET_ID", "abc")

		cfg := &Config{Source: SourceConfig{Kind: SourceWorkbook}}
		cfg.applyEnvOverrides()
		assert.Equal(t, "abc", cfg.Source.SpreadsheetID)
		assert.Equal(t, SourceSheets, cfg.Source.Kind)
	})

	t.Run("workbook wins over spreadsheet id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ACEDASH_SPREADSHEET_ID", "abc")
		t.Setenv("ACEDASH_WORKBOOK", "book.xlsx")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "book.xlsx", cfg.Source.WorkbookPath)
		assert.Equal(t, SourceWorkbook, cfg.Source.Kind)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown source", func(c *Config) { c.Source.Kind = "ftp" }, "source.kind"},
		{"sheets without id", func(c *Config) { c.Source.SpreadsheetID = "" }, "spreadsheet_id"},
		{"workbook without path", func(c *Config) { c.Source.Kind = SourceWorkbook }, "workbook_path"},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"zero rate window", func(c *Config) { c.Server.RateLimit.Window = 0 }, "rate_limit"},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"unknown table role", func(c *Config) { c.Tables["alumni"] = "x" }, "unknown table role"},
		{"unknown field", func(c *Config) { c.Fields = map[string]string{"teacher.salary": "x"} }, "unknown field"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	disabled := Default()
	disabled.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, disabled.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "acedash.yaml")
	cfg := Default()
	cfg.Server.Addr = ":9999"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLogBuild(t *testing.T) {
	logger, err := LogConfig{Level: "warn"}.Build(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = LogConfig{Level: "warn"}.Build(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
