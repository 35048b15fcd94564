// Package bench provides a benchmark harness for the store contract.
//
// The harness drives a wrapped backend through the same public operations
// any caller would use: concurrent writers insert via AddUnique while
// readers issue trailing-window Range queries. Per-operation latency is
// recorded in DDSketches so the report can carry percentiles instead of
// just averages.
package bench

import (
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
	"golang.org/x/sync/errgroup"

	"github.com/xtxerr/tsmap/config"
	"github.com/xtxerr/tsmap/internal/errors"
	"github.com/xtxerr/tsmap/internal/store"
)

// Config describes a benchmark workload.
type Config struct {
	// Backend is the storage strategy under test.
	Backend store.Backend

	// Writers is the number of concurrent insert goroutines.
	Writers int

	// Readers is the number of concurrent query goroutines. Each reader
	// issues one Range query per writer operation.
	Readers int

	// OpsPerWriter is the number of AddUnique calls each writer performs.
	OpsPerWriter int

	// MaxOffset is the AddUnique collision window.
	MaxOffset time.Duration

	// RangeSpan is the trailing window readers query.
	RangeSpan time.Duration

	// SketchAccuracy is the DDSketch relative accuracy.
	SketchAccuracy float64
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = store.Backend(config.DefaultBackend)
	}
	if c.Writers <= 0 {
		c.Writers = config.DefaultBenchWriters
	}
	if c.Readers < 0 {
		c.Readers = config.DefaultBenchReaders
	}
	if c.OpsPerWriter <= 0 {
		c.OpsPerWriter = config.DefaultBenchOpsPerWriter
	}
	if c.MaxOffset <= 0 {
		c.MaxOffset = config.DefaultMaxOffset
	}
	if c.RangeSpan <= 0 {
		c.RangeSpan = config.DefaultBenchRangeSpan
	}
	if c.SketchAccuracy <= 0 || c.SketchAccuracy >= 1 {
		c.SketchAccuracy = config.DefaultSketchAccuracy
	}
	return c
}

// LatencySummary condenses one sketch into the usual percentiles.
// All values are microseconds.
type LatencySummary struct {
	Count int64
	Min   float64
	Max   float64
	P50   float64
	P95   float64
	P99   float64
}

// Report is the outcome of a benchmark run.
type Report struct {
	Backend store.Backend
	Ops     int64
	Entries int
	Elapsed time.Duration
	Insert  LatencySummary
	Query   LatencySummary
}

// Run executes the configured workload and returns its report.
func Run(cfg Config) (*Report, error) {
	cfg = cfg.withDefaults()

	s, err := store.NewShared[int64](cfg.Backend)
	if err != nil {
		return nil, errors.Wrap(err, "bench setup")
	}

	writerSketches := make([]*ddsketch.DDSketch, cfg.Writers)
	readerSketches := make([]*ddsketch.DDSketch, cfg.Readers)
	for i := range writerSketches {
		if writerSketches[i], err = ddsketch.NewDefaultDDSketch(cfg.SketchAccuracy); err != nil {
			return nil, errors.Wrap(err, "create sketch")
		}
	}
	for i := range readerSketches {
		if readerSketches[i], err = ddsketch.NewDefaultDDSketch(cfg.SketchAccuracy); err != nil {
			return nil, errors.Wrap(err, "create sketch")
		}
	}

	var g errgroup.Group
	started := time.Now()

	for w := 0; w < cfg.Writers; w++ {
		sketch := writerSketches[w]
		seq := int64(w) * int64(cfg.OpsPerWriter)
		g.Go(func() error {
			for i := 0; i < cfg.OpsPerWriter; i++ {
				opStart := time.Now()
				s.AddUnique(opStart, seq+int64(i), cfg.MaxOffset)
				if err := sketch.Add(float64(time.Since(opStart).Nanoseconds()) / 1e3); err != nil {
					return errors.Wrap(err, "record insert latency")
				}
			}
			return nil
		})
	}

	for r := 0; r < cfg.Readers; r++ {
		sketch := readerSketches[r]
		g.Go(func() error {
			for i := 0; i < cfg.OpsPerWriter; i++ {
				opStart := time.Now()
				s.Last(cfg.RangeSpan)
				if err := sketch.Add(float64(time.Since(opStart).Nanoseconds()) / 1e3); err != nil {
					return errors.Wrap(err, "record query latency")
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	elapsed := time.Since(started)

	insert, err := summarize(writerSketches, cfg.SketchAccuracy)
	if err != nil {
		return nil, err
	}
	query, err := summarize(readerSketches, cfg.SketchAccuracy)
	if err != nil {
		return nil, err
	}

	return &Report{
		Backend: cfg.Backend,
		Ops:     insert.Count + query.Count,
		Entries: s.Len(),
		Elapsed: elapsed,
		Insert:  insert,
		Query:   query,
	}, nil
}

// summarize merges per-worker sketches and extracts the summary.
func summarize(sketches []*ddsketch.DDSketch, accuracy float64) (LatencySummary, error) {
	if len(sketches) == 0 {
		return LatencySummary{}, nil
	}

	merged, err := ddsketch.NewDefaultDDSketch(accuracy)
	if err != nil {
		return LatencySummary{}, errors.Wrap(err, "create merge sketch")
	}
	for _, sketch := range sketches {
		if err := merged.MergeWith(sketch); err != nil {
			return LatencySummary{}, errors.Wrap(err, "merge sketches")
		}
	}

	count := int64(merged.GetCount())
	if count == 0 {
		return LatencySummary{}, nil
	}

	summary := LatencySummary{Count: count}
	if summary.Min, err = merged.GetMinValue(); err != nil {
		return LatencySummary{}, errors.Wrap(err, "min")
	}
	if summary.Max, err = merged.GetMaxValue(); err != nil {
		return LatencySummary{}, errors.Wrap(err, "max")
	}
	if summary.P50, err = merged.GetValueAtQuantile(0.50); err != nil {
		return LatencySummary{}, errors.Wrap(err, "p50")
	}
	if summary.P95, err = merged.GetValueAtQuantile(0.95); err != nil {
		return LatencySummary{}, errors.Wrap(err, "p95")
	}
	if summary.P99, err = merged.GetValueAtQuantile(0.99); err != nil {
		return LatencySummary{}, errors.Wrap(err, "p99")
	}
	return summary, nil
}
