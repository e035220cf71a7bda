// Package workload generates the synthetic vector-entry corpus fed to
// every storage backend under benchmark, and defines the binary wire
// format entries are stored in.
package workload

import (
	"fmt"
	mrand "math/rand"
	"time"
)

// Entry is one fixed-schema record of the benchmark workload. Entries
// are immutable once generated.
type Entry struct {
	ID           int64
	Embedding    []float32
	OriginalData string
	DatabaseID   string
	CreatedAt    int64
}

// Config controls corpus generation parameters.
type Config struct {
	Num  int
	Dim  int
	Seed int64
}

// Generator produces benchmark corpora from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config. A zero seed
// falls back to the current time.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(seed)),
	}
}

// Generate returns cfg.Num entries with dense ids 0..Num-1 and uniform
// random embeddings of length cfg.Dim. All entries share one creation
// timestamp captured at the start of the call.
func (g *Generator) Generate() []Entry {
	ts := time.Now().UnixMilli()

	entries := make([]Entry, g.cfg.Num)
	for i := range entries {
		emb := make([]float32, g.cfg.Dim)
		for j := range emb {
			emb[j] = g.rng.Float32()
		}

		entries[i] = Entry{
			ID:           int64(i),
			Embedding:    emb,
			OriginalData: fmt.Sprintf("data_%d", i),
			DatabaseID:   "bench_db",
			CreatedAt:    ts,
		}
	}

	return entries
}

// PayloadBytes returns the total encoded size of the corpus, used for
// the derived sequential-read throughput metric.
func PayloadBytes(entries []Entry) int64 {
	var total int64
	for i := range entries {
		total += int64(EncodedSize(&entries[i]))
	}

	return total
}
