// Package loader handles configuration file loading and validation for the
// tsmap command-line tools.
//
// This package is responsible for:
//   - Loading YAML configuration files
//   - Expanding environment variables
//   - Applying documented defaults
//   - Validating the result before it reaches the store or bench harness
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtxerr/tsmap/config"
	"github.com/xtxerr/tsmap/internal/errors"
	"github.com/xtxerr/tsmap/internal/store"
)

// Config is the root configuration for the tsmap tools.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Bench BenchConfig `yaml:"bench"`
	Log   LogConfig   `yaml:"log"`
}

// StoreConfig selects and tunes the backend.
type StoreConfig struct {
	// Backend is one of "hash", "tree", "seq".
	Backend string `yaml:"backend"`

	// MaxOffsetMs is the AddUnique collision window in milliseconds.
	// Zero selects the built-in default.
	MaxOffsetMs int64 `yaml:"max_offset_ms"`
}

// BenchConfig tunes the benchmark harness workload.
type BenchConfig struct {
	Writers        int     `yaml:"writers"`
	Readers        int     `yaml:"readers"`
	OpsPerWriter   int     `yaml:"ops_per_writer"`
	SketchAccuracy float64 `yaml:"sketch_accuracy"`
	RangeSpanMs    int64   `yaml:"range_span_ms"`
}

// LogConfig controls the logging setup of the binaries.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:     config.DefaultBackend,
			MaxOffsetMs: config.DefaultMaxOffset.Milliseconds(),
		},
		Bench: BenchConfig{
			Writers:        config.DefaultBenchWriters,
			Readers:        config.DefaultBenchReaders,
			OpsPerWriter:   config.DefaultBenchOpsPerWriter,
			SketchAccuracy: config.DefaultSketchAccuracy,
			RangeSpanMs:    config.DefaultBenchRangeSpan.Milliseconds(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. Environment variables in the
// file are expanded before parsing; missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if !store.Backend(c.Store.Backend).Valid() {
		return errors.NewUnknownBackend(c.Store.Backend)
	}
	if c.Store.MaxOffsetMs < 0 {
		return errors.NewValidation("store.max_offset_ms", "must not be negative")
	}
	if c.Bench.Writers < 1 {
		return errors.NewValidation("bench.writers", "must be at least 1")
	}
	if c.Bench.Readers < 0 {
		return errors.NewValidation("bench.readers", "must not be negative")
	}
	if c.Bench.OpsPerWriter < 1 {
		return errors.NewValidation("bench.ops_per_writer", "must be at least 1")
	}
	if c.Bench.SketchAccuracy <= 0 || c.Bench.SketchAccuracy >= 1 {
		return errors.NewValidation("bench.sketch_accuracy", "must be in (0, 1)")
	}
	if c.Bench.RangeSpanMs < 1 {
		return errors.NewValidation("bench.range_span_ms", "must be at least 1")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Backend returns the configured backend kind.
func (c *Config) Backend() store.Backend {
	return store.Backend(c.Store.Backend)
}

// MaxOffset returns the configured AddUnique collision window.
func (c *Config) MaxOffset() time.Duration {
	if c.Store.MaxOffsetMs == 0 {
		return config.DefaultMaxOffset
	}
	return time.Duration(c.Store.MaxOffsetMs) * time.Millisecond
}

// RangeSpan returns the window bench readers query.
func (c *Config) RangeSpan() time.Duration {
	return time.Duration(c.Bench.RangeSpanMs) * time.Millisecond
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.NewValidation("log.level", fmt.Sprintf("unknown level %q", c.Log.Level))
	}
}
