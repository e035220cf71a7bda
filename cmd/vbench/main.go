// Package main provides the CLI entry point for vbench, a cross-backend
// storage benchmark for vector entry workloads.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vectordb/vbench/backend"
	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/report"
)

// The --full sweep matrix.
var (
	fullSizes = []int{100_000, 200_000, 500_000, 1_000_000}
	fullDims  = []int{128, 256}
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "vbench",
		Short: "Cross-backend storage benchmark for vector entry workloads",
		Long: `Vbench generates a synthetic corpus of fixed-schema vector entries,
writes it into several embedded and networked storage engines, and compares
write throughput, point-read latency, sequential-read bandwidth, and storage
footprint across backends and corpus sizes.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

type runConfig struct {
	entries  int
	dim      int
	full     bool
	redisURL string
	noRedis  bool
	seed     int64
	passes   int
	warmup   int
	json     bool
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the storage benchmarks",
		Long: `Generate a vector entry corpus and run it through every registered
storage backend, printing a markdown comparison table. With --full the
predefined corpus size and dimension matrix is swept instead of a single
(n, dim) point.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBenchmark(logger, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.entries, "entries", "n", 100_000,
		"Entry count for a single run")
	flags.IntVarP(&cfg.dim, "dim", "d", 128,
		"Embedding dimension for a single run")
	flags.BoolVar(&cfg.full, "full", false,
		"Run the full size x dimension matrix")
	flags.StringVar(&cfg.redisURL, "redis-url", "redis://localhost:6379/0",
		"Redis endpoint for the networked backend")
	flags.BoolVar(&cfg.noRedis, "no-redis", false,
		"Exclude backends that require an external service")
	flags.Int64Var(&cfg.seed, "seed", 0,
		"Corpus random seed (0 = use current time)")
	flags.IntVar(&cfg.passes, "passes", harness.DefaultReadPasses,
		"Timed read passes; the median is reported")
	flags.IntVar(&cfg.warmup, "warmup", harness.DefaultWarmupReads,
		"Warmup read sample size")
	flags.BoolVar(&cfg.json, "json", false,
		"Output results as JSON instead of a table")

	return cmd
}

func runBenchmark(logger *slog.Logger, cfg runConfig) error {
	sizes := []int{cfg.entries}
	dims := []int{cfg.dim}
	if cfg.full {
		sizes = fullSizes
		dims = fullDims
	}

	engine := &harness.Engine{
		Logger: logger,
		Opts: harness.Options{
			WarmupReads: cfg.warmup,
			ReadPasses:  cfg.passes,
		},
	}

	rows, err := engine.Sweep(harness.SweepConfig{
		Sizes:       sizes,
		Dims:        dims,
		Seed:        cfg.seed,
		Defs:        backend.Definitions(),
		ServiceURL:  cfg.redisURL,
		SkipService: cfg.noRedis,
	})
	if err != nil {
		return err
	}

	if cfg.json {
		if err := report.WriteJSON(os.Stdout, rows); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		fmt.Println()
		fmt.Println("## Results")
		fmt.Println()

		if err := report.Write(os.Stdout, rows); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.Info("benchmark complete", slog.Int("rows", len(rows)))

	return nil
}
