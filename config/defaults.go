// Package config provides configuration defaults and utilities
// for the tsmap tools.
//
// This package defines all configurable constants with documented defaults.
// Users can override these values via config.yaml or command-line flags.
package config

import "time"

// =============================================================================
// Store Defaults
// =============================================================================

const (
	// DefaultBackend is the backend selected when none is configured.
	// The tree backend is the only one with chronologically ordered output.
	// Override via config: store.backend
	DefaultBackend = "tree"

	// DefaultMaxOffset is the collision-offset window for AddUnique.
	// When the requested timestamp is occupied, a random offset in
	// [0, DefaultMaxOffset) is added until a free slot is found.
	// Override per call via the maxOffset argument.
	DefaultMaxOffset = time.Second
)

// =============================================================================
// Benchmark Defaults
// =============================================================================

const (
	// DefaultBenchWriters is the number of concurrent writer goroutines.
	// Override via config: bench.writers
	DefaultBenchWriters = 4

	// DefaultBenchReaders is the number of concurrent reader goroutines.
	// Override via config: bench.readers
	DefaultBenchReaders = 2

	// DefaultBenchOpsPerWriter is the number of inserts each writer performs.
	// Override via config: bench.ops_per_writer
	DefaultBenchOpsPerWriter = 10000

	// DefaultSketchAccuracy is the DDSketch relative accuracy used for
	// latency percentiles. 1% keeps memory small and percentiles usable.
	// Override via config: bench.sketch_accuracy
	DefaultSketchAccuracy = 0.01

	// DefaultBenchRangeSpan is the window readers query during a run.
	// Override via config: bench.range_span
	DefaultBenchRangeSpan = time.Minute
)
