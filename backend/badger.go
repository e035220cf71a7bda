package backend

import (
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

type badgerStore struct {
	db   *badger.DB
	path string
}

func openBadger(dir, _ string) (harness.Store, error) {
	path := filepath.Join(dir, "badger")

	opts := badger.DefaultOptions(path).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &badgerStore{db: db, path: path}, nil
}

func (s *badgerStore) WriteAll(entries []workload.Entry) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i := range entries {
		e := &entries[i]
		if err := wb.Set(key(e.ID), workload.Encode(e)); err != nil {
			return fmt.Errorf("batch set id %d: %w", e.ID, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush write batch: %w", err)
	}

	return s.db.Sync()
}

func (s *badgerStore) Size() (int64, error) {
	return dirSize(s.path)
}

func (s *badgerStore) ReadAll(entries []workload.Entry) error {
	return s.db.View(func(txn *badger.Txn) error {
		for i := range entries {
			item, err := txn.Get(key(entries[i].ID))
			if err != nil {
				return fmt.Errorf("get id %d: %w", entries[i].ID, err)
			}

			if err := item.Value(func([]byte) error { return nil }); err != nil {
				return fmt.Errorf("value id %d: %w", entries[i].ID, err)
			}
		}

		return nil
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
