package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/vectordb/vbench/workload"
)

// SweepConfig describes the benchmark matrix: every (size, dimension)
// corpus is run against every registered backend.
type SweepConfig struct {
	Sizes       []int
	Dims        []int
	Seed        int64
	Defs        []Definition
	ServiceURL  string
	SkipService bool
}

// Validate rejects invalid sweep parameters before any backend work
// begins.
func (c SweepConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("sweep needs at least one corpus size")
	}
	if len(c.Dims) == 0 {
		return fmt.Errorf("sweep needs at least one dimension")
	}
	if len(c.Defs) == 0 {
		return fmt.Errorf("sweep needs at least one backend")
	}

	for _, n := range c.Sizes {
		if n <= 0 {
			return fmt.Errorf("corpus size must be positive, got %d", n)
		}
	}
	for _, d := range c.Dims {
		if d <= 0 {
			return fmt.Errorf("dimension must be positive, got %d", d)
		}
	}

	return nil
}

// Row is one (corpus size, dimension, backend) cell of the matrix.
type Row struct {
	Num    int
	Dim    int
	Result ExtendedResult
}

// Sweep runs the full matrix, dimensions outer and sizes inner, and
// returns one Row per completed cell. Backend failures are logged and
// skipped at the cell boundary; they never abort the sweep or affect
// another backend's measurement.
func (e *Engine) Sweep(cfg SweepConfig) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rows []Row

	for _, dim := range cfg.Dims {
		for _, num := range cfg.Sizes {
			cellRows, err := e.runCell(cfg, num, dim)
			if err != nil {
				return rows, err
			}

			rows = append(rows, cellRows...)
		}
	}

	return rows, nil
}

func (e *Engine) runCell(cfg SweepConfig, num, dim int) ([]Row, error) {
	// Reclaim the previous iteration's corpus before generating the
	// next one so memory-sensitive size metrics do not see stale
	// allocations.
	runtime.GC()

	gen := workload.NewGenerator(workload.Config{Num: num, Dim: dim, Seed: cfg.Seed})
	entries := gen.Generate()
	payload := workload.PayloadBytes(entries)

	e.Logger.Info("corpus generated",
		slog.Int("n", num),
		slog.Int("dim", dim),
		slog.Int64("payload_bytes", payload),
	)

	dir, err := os.MkdirTemp("", "vbench_")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var rows []Row

	for _, def := range cfg.Defs {
		if def.RequiresService && cfg.SkipService {
			e.Logger.Info("skipping backend",
				slog.String("backend", def.Name),
				slog.String("reason", "external service disabled"),
			)

			continue
		}

		runtime.GC()

		raw, err := e.Run(def, entries, dir, cfg.ServiceURL)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				e.Logger.Info("skipping backend",
					slog.String("backend", def.Name),
					slog.String("reason", err.Error()),
				)
			} else {
				e.Logger.Warn("backend failed",
					slog.String("backend", def.Name),
					slog.String("error", err.Error()),
				)
			}

			continue
		}

		e.Logger.Info("backend finished",
			slog.String("backend", def.Name),
			slog.Int("n", num),
			slog.Int("dim", dim),
		)

		rows = append(rows, Row{
			Num:    num,
			Dim:    dim,
			Result: Extend(raw, len(entries), payload),
		})
	}

	return rows, nil
}
