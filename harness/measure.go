package harness

import (
	"fmt"
	mrand "math/rand"
	"slices"
	"time"

	"github.com/vectordb/vbench/workload"
)

// Defaults for the read measurement methodology. Both are tunable via
// Options; these values match the reference workload.
const (
	DefaultWarmupReads = 1000
	DefaultReadPasses  = 3
)

// Options control how the read phase is measured.
type Options struct {
	// WarmupReads bounds the random sample read once, untimed, before
	// measurement to let the backend populate internal caches.
	WarmupReads int

	// ReadPasses is the number of timed full read passes; the median
	// pass duration is reported.
	ReadPasses int
}

func (o Options) withDefaults() Options {
	if o.WarmupReads <= 0 {
		o.WarmupReads = DefaultWarmupReads
	}
	if o.ReadPasses <= 0 {
		o.ReadPasses = DefaultReadPasses
	}

	return o
}

// measureRead runs the warmup-then-measure protocol: one untimed pass
// over a bounded random sample, then ReadPasses timed passes over the
// full corpus. Every pass re-issues all reads; nothing is cached by
// the harness. Returns the median pass duration in seconds.
func (e *Engine) measureRead(store Store, entries []workload.Entry) (float64, error) {
	opts := e.Opts.withDefaults()

	if err := store.ReadAll(warmupSample(entries, opts.WarmupReads)); err != nil {
		return 0, fmt.Errorf("warmup pass: %w", err)
	}

	durations := make([]time.Duration, opts.ReadPasses)
	for i := range durations {
		start := time.Now()
		if err := store.ReadAll(entries); err != nil {
			return 0, fmt.Errorf("measured pass %d: %w", i+1, err)
		}
		durations[i] = time.Since(start)
	}

	return median(durations).Seconds(), nil
}

// warmupSample draws min(len(entries), n) entries without replacement.
func warmupSample(entries []workload.Entry, n int) []workload.Entry {
	if n > len(entries) {
		n = len(entries)
	}

	sample := make([]workload.Entry, 0, n)
	for _, idx := range mrand.Perm(len(entries))[:n] {
		sample = append(sample, entries[idx])
	}

	return sample
}

func median(durations []time.Duration) time.Duration {
	sorted := slices.Clone(durations)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
