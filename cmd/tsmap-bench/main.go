// tsmap-bench runs the benchmark harness against a chosen backend and
// reports insert and query latency percentiles.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/xtxerr/tsmap/internal/bench"
	"github.com/xtxerr/tsmap/internal/loader"
	"github.com/xtxerr/tsmap/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	backend := flag.String("backend", "", "backend kind: hash, tree or seq (overrides config)")
	writers := flag.Int("writers", 0, "writer goroutines (overrides config)")
	readers := flag.Int("readers", -1, "reader goroutines (overrides config)")
	ops := flag.Int("ops", 0, "inserts per writer (overrides config)")
	flag.Parse()

	cfg := loader.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = loader.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if *writers > 0 {
		cfg.Bench.Writers = *writers
	}
	if *readers >= 0 {
		cfg.Bench.Readers = *readers
	}
	if *ops > 0 {
		cfg.Bench.OpsPerWriter = *ops
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.LogLevel()
	logging.Init(level, cfg.Log.JSON)
	log := logging.Component("bench")

	log.Info("benchmark starting",
		"version", Version,
		"backend", cfg.Backend(),
		"writers", cfg.Bench.Writers,
		"readers", cfg.Bench.Readers,
		"ops_per_writer", cfg.Bench.OpsPerWriter)

	report, err := bench.Run(bench.Config{
		Backend:        cfg.Backend(),
		Writers:        cfg.Bench.Writers,
		Readers:        cfg.Bench.Readers,
		OpsPerWriter:   cfg.Bench.OpsPerWriter,
		MaxOffset:      cfg.MaxOffset(),
		RangeSpan:      cfg.RangeSpan(),
		SketchAccuracy: cfg.Bench.SketchAccuracy,
	})
	if err != nil {
		log.Error("benchmark failed", "error", err)
		os.Exit(1)
	}

	log.Info("benchmark complete",
		"backend", report.Backend,
		"ops", report.Ops,
		"entries", report.Entries,
		"elapsed", report.Elapsed,
		"ops_per_sec", float64(report.Ops)/report.Elapsed.Seconds())

	logSummary(log, "insert", report.Insert)
	if report.Query.Count > 0 {
		logSummary(log, "query", report.Query)
	}
}

func logSummary(log *slog.Logger, op string, s bench.LatencySummary) {
	log.Info(op+" latency (us)",
		"count", s.Count,
		"min", fmt.Sprintf("%.1f", s.Min),
		"p50", fmt.Sprintf("%.1f", s.P50),
		"p95", fmt.Sprintf("%.1f", s.P95),
		"p99", fmt.Sprintf("%.1f", s.P99),
		"max", fmt.Sprintf("%.1f", s.Max))
}
