package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtxerr/tsmap/internal/errors"
	"github.com/xtxerr/tsmap/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, store.BackendTree, cfg.Backend())
	assert.Equal(t, time.Second, cfg.MaxOffset())
	assert.Equal(t, 4, cfg.Bench.Writers)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: hash
  max_offset_ms: 250
bench:
  writers: 8
  readers: 3
  ops_per_writer: 500
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, store.BackendHash, cfg.Backend())
	assert.Equal(t, 250*time.Millisecond, cfg.MaxOffset())
	assert.Equal(t, 8, cfg.Bench.Writers)
	assert.Equal(t, 3, cfg.Bench.Readers)
	assert.Equal(t, 500, cfg.Bench.OpsPerWriter)

	// Unspecified fields keep their defaults.
	assert.Equal(t, 0.01, cfg.Bench.SketchAccuracy)
	assert.Equal(t, time.Minute, cfg.RangeSpan())
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TSMAP_BACKEND", "seq")

	path := writeConfig(t, `
store:
  backend: ${TSMAP_BACKEND}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.BackendSeq, cfg.Backend())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"negative offset", func(c *Config) { c.Store.MaxOffsetMs = -1 }},
		{"zero writers", func(c *Config) { c.Bench.Writers = 0 }},
		{"negative readers", func(c *Config) { c.Bench.Readers = -1 }},
		{"zero ops", func(c *Config) { c.Bench.OpsPerWriter = 0 }},
		{"bad accuracy", func(c *Config) { c.Bench.SketchAccuracy = 1.5 }},
		{"zero span", func(c *Config) { c.Bench.RangeSpanMs = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err), "expected a validation error, got %v", err)
		})
	}
}
