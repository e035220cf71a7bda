package backend

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

var boltBucket = []byte("vectors")

type boltStore struct {
	db   *bolt.DB
	path string
}

func openBolt(dir, _ string) (harness.Store, error) {
	path := filepath.Join(dir, "bolt.db")

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	return &boltStore{db: db, path: path}, nil
}

func (s *boltStore) WriteAll(entries []workload.Entry) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for i := range entries {
			e := &entries[i]
			if err := b.Put(key(e.ID), workload.Encode(e)); err != nil {
				return fmt.Errorf("put id %d: %w", e.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Sync()
}

func (s *boltStore) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", s.path, err)
	}

	return info.Size(), nil
}

func (s *boltStore) ReadAll(entries []workload.Entry) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b == nil {
			return fmt.Errorf("bucket %q missing", boltBucket)
		}

		for i := range entries {
			if v := b.Get(key(entries[i].ID)); v == nil {
				return fmt.Errorf("missing id %d", entries[i].ID)
			}
		}

		return nil
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
