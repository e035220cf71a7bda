package workload

import (
	"fmt"
	"testing"
)

func TestGenerateDenseIDs(t *testing.T) {
	gen := NewGenerator(Config{Num: 100, Dim: 4, Seed: 1})
	entries := gen.Generate()

	if len(entries) != 100 {
		t.Fatalf("len(entries) = %d, want 100", len(entries))
	}

	seen := make(map[int64]bool, len(entries))
	for i, e := range entries {
		if e.ID != int64(i) {
			t.Errorf("entries[%d].ID = %d, want %d", i, e.ID, i)
		}
		if seen[e.ID] {
			t.Errorf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestGenerateEntryShape(t *testing.T) {
	gen := NewGenerator(Config{Num: 10, Dim: 8, Seed: 1})
	entries := gen.Generate()

	for i, e := range entries {
		if len(e.Embedding) != 8 {
			t.Errorf("entries[%d] embedding length = %d, want 8",
				i, len(e.Embedding))
		}
		if want := fmt.Sprintf("data_%d", i); e.OriginalData != want {
			t.Errorf("entries[%d].OriginalData = %q, want %q",
				i, e.OriginalData, want)
		}
		if e.DatabaseID != "bench_db" {
			t.Errorf("entries[%d].DatabaseID = %q, want bench_db",
				i, e.DatabaseID)
		}
	}
}

func TestGenerateSharedTimestamp(t *testing.T) {
	gen := NewGenerator(Config{Num: 1000, Dim: 2, Seed: 1})
	entries := gen.Generate()

	ts := entries[0].CreatedAt
	if ts == 0 {
		t.Fatal("CreatedAt is zero")
	}

	for i, e := range entries {
		if e.CreatedAt != ts {
			t.Fatalf("entries[%d].CreatedAt = %d, want %d", i, e.CreatedAt, ts)
		}
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	a := NewGenerator(Config{Num: 20, Dim: 16, Seed: 42}).Generate()
	b := NewGenerator(Config{Num: 20, Dim: 16, Seed: 42}).Generate()

	for i := range a {
		for j := range a[i].Embedding {
			if a[i].Embedding[j] != b[i].Embedding[j] {
				t.Fatalf("embedding[%d][%d]: %v != %v",
					i, j, a[i].Embedding[j], b[i].Embedding[j])
			}
		}
	}
}

func TestPayloadBytes(t *testing.T) {
	gen := NewGenerator(Config{Num: 25, Dim: 3, Seed: 7})
	entries := gen.Generate()

	var want int64
	for i := range entries {
		want += int64(len(Encode(&entries[i])))
	}

	if got := PayloadBytes(entries); got != want {
		t.Errorf("PayloadBytes = %d, want %d", got, want)
	}
}

func TestPayloadBytesEmpty(t *testing.T) {
	if got := PayloadBytes(nil); got != 0 {
		t.Errorf("PayloadBytes(nil) = %d, want 0", got)
	}
}
