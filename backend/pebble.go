package backend

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

type pebbleStore struct {
	db   *pebble.DB
	path string
}

func openPebble(dir, _ string) (harness.Store, error) {
	path := filepath.Join(dir, "pebble")

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}

	return &pebbleStore{db: db, path: path}, nil
}

func (s *pebbleStore) WriteAll(entries []workload.Entry) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for i := range entries {
		e := &entries[i]
		if err := batch.Set(key(e.ID), workload.Encode(e), nil); err != nil {
			return fmt.Errorf("batch set id %d: %w", e.ID, err)
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	// Push the memtable to disk so Size sees the real footprint.
	return s.db.Flush()
}

func (s *pebbleStore) Size() (int64, error) {
	return dirSize(s.path)
}

func (s *pebbleStore) ReadAll(entries []workload.Entry) error {
	for i := range entries {
		_, closer, err := s.db.Get(key(entries[i].ID))
		if err != nil {
			return fmt.Errorf("get id %d: %w", entries[i].ID, err)
		}

		if err := closer.Close(); err != nil {
			return fmt.Errorf("close value id %d: %w", entries[i].ID, err)
		}
	}

	return nil
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
