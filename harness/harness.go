// Package harness measures storage backends against a generated corpus
// using a uniform write/warmup/median-read methodology, so results stay
// comparable across engines with different transaction and durability
// models.
package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vectordb/vbench/workload"
)

// ErrUnavailable marks a backend whose driver or service cannot be
// reached. The sweep treats it as a skip, never a fatal error.
var ErrUnavailable = errors.New("backend unavailable")

// Store is the capability contract every backend adapter implements.
// Adapters are mutually independent; none may observe another's data.
type Store interface {
	// WriteAll inserts every entry keyed by its id and forces a
	// durability barrier before returning. The engine times the whole
	// call as the write phase.
	WriteAll(entries []workload.Entry) error

	// Size reports total stored bytes after the write phase: on-disk
	// footprint for file-backed engines, resident dataset size for
	// in-memory services.
	Size() (int64, error)

	// ReadAll issues one point lookup per entry and discards the
	// results. The engine calls it for the warmup pass and for each
	// measured pass.
	ReadAll(entries []workload.Entry) error

	// Close releases handles and connections. It runs on every exit
	// path once the store has been opened.
	Close() error
}

// Definition registers a named backend with the sweep. RequiresService
// marks backends that need an external service so they can be skipped
// cleanly when that service is disabled or unreachable.
type Definition struct {
	Name            string
	RequiresService bool
	Open            func(dir, serviceURL string) (Store, error)
}

// Engine applies the measurement methodology to one backend at a time.
type Engine struct {
	Logger *slog.Logger
	Opts   Options
}

// Run opens the backend against dir, times the write phase, sizes the
// store, and measures reads with a warmup pass followed by timed full
// passes. The returned RawResult is valid only when err is nil; an
// error wrapping ErrUnavailable means the backend should be skipped.
func (e *Engine) Run(
	def Definition,
	entries []workload.Entry,
	dir, serviceURL string,
) (RawResult, error) {
	store, err := def.Open(dir, serviceURL)
	if err != nil {
		return RawResult{}, fmt.Errorf("open %s: %w", def.Name, err)
	}
	defer store.Close()

	start := time.Now()
	if err := store.WriteAll(entries); err != nil {
		return RawResult{}, fmt.Errorf("write %s: %w", def.Name, err)
	}
	writeSec := time.Since(start).Seconds()

	size, err := store.Size()
	if err != nil {
		return RawResult{}, fmt.Errorf("size %s: %w", def.Name, err)
	}

	readSec, err := e.measureRead(store, entries)
	if err != nil {
		return RawResult{}, fmt.Errorf("read %s: %w", def.Name, err)
	}

	return RawResult{
		Name:      def.Name,
		WriteSec:  writeSec,
		ReadSec:   readSec,
		SizeBytes: size,
	}, nil
}
