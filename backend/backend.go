// Package backend provides the storage engine adapters measured by the
// harness. Each adapter implements harness.Store over one engine and
// stays independent of every other adapter.
package backend

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/vectordb/vbench/harness"
)

// Definitions returns every known backend in fixed registration order,
// so report row order is reproducible across runs.
func Definitions() []harness.Definition {
	return []harness.Definition{
		{Name: "Badger", Open: openBadger},
		{Name: "Pebble", Open: openPebble},
		{Name: "Bolt", Open: openBolt},
		{Name: "SQLite", Open: openSQLite},
		{Name: "Redis", RequiresService: true, Open: openRedis},
	}
}

// key returns the 8-byte little-endian form of an entry id. Every
// key-value adapter keys its records this way.
func key(id int64) []byte {
	var k [8]byte
	binary.LittleEndian.PutUint64(k[:], uint64(id))

	return k[:]
}

// dirSize sums file sizes under path for on-disk footprint reporting.
func dirSize(path string) (int64, error) {
	var size int64

	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}

		return nil
	})

	return size, err
}
