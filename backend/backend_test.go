package backend

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

func TestDefinitionsOrder(t *testing.T) {
	defs := Definitions()

	want := []string{"Badger", "Pebble", "Bolt", "SQLite", "Redis"}
	if len(defs) != len(want) {
		t.Fatalf("definition count = %d, want %d", len(defs), len(want))
	}

	for i, name := range want {
		if defs[i].Name != name {
			t.Errorf("defs[%d].Name = %q, want %q", i, defs[i].Name, name)
		}
	}

	for _, def := range defs {
		if def.RequiresService != (def.Name == "Redis") {
			t.Errorf("%s RequiresService = %v", def.Name, def.RequiresService)
		}
	}
}

func TestKeyLittleEndian(t *testing.T) {
	if got := key(1); !bytes.Equal(got, []byte{1, 0, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("key(1) = %v", got)
	}

	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if got := key(0x0102030405060708); !bytes.Equal(got, want) {
		t.Errorf("key = %v, want %v", got, want)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b"), make([]byte, 25), 0o644); err != nil {
		t.Fatal(err)
	}

	size, err := dirSize(dir)
	if err != nil {
		t.Fatalf("dirSize failed: %v", err)
	}
	if size != 125 {
		t.Errorf("dirSize = %d, want 125", size)
	}
}

// testStoreLifecycle exercises the full adapter contract against a
// real engine in a temp directory.
func testStoreLifecycle(t *testing.T, open func(dir, serviceURL string) (harness.Store, error)) {
	t.Helper()

	entries := workload.NewGenerator(workload.Config{
		Num: 50, Dim: 8, Seed: 1,
	}).Generate()

	store, err := open(t.TempDir(), "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := store.WriteAll(entries); err != nil {
		store.Close()
		t.Fatalf("WriteAll failed: %v", err)
	}

	size, err := store.Size()
	if err != nil {
		store.Close()
		t.Fatalf("Size failed: %v", err)
	}
	if size <= 0 {
		t.Errorf("Size = %d, want > 0", size)
	}

	if err := store.ReadAll(entries); err != nil {
		store.Close()
		t.Fatalf("ReadAll failed: %v", err)
	}

	// A lookup for an id that was never written must fail, proving
	// reads actually hit the engine.
	missing := []workload.Entry{{ID: 9999}}
	if err := store.ReadAll(missing); err == nil {
		t.Error("ReadAll of missing id succeeded, want error")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestBadgerStore(t *testing.T) {
	testStoreLifecycle(t, openBadger)
}

func TestPebbleStore(t *testing.T) {
	testStoreLifecycle(t, openPebble)
}

func TestBoltStore(t *testing.T) {
	testStoreLifecycle(t, openBolt)
}

func TestSQLiteStore(t *testing.T) {
	testStoreLifecycle(t, openSQLite)
}

func TestRedisUnreachableIsUnavailable(t *testing.T) {
	// Nothing listens on port 1; the dial fails immediately.
	_, err := openRedis("", "redis://127.0.0.1:1/0")
	if err == nil {
		t.Fatal("openRedis succeeded against dead endpoint")
	}
	if !errors.Is(err, harness.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestRedisBadURL(t *testing.T) {
	if _, err := openRedis("", "not a url"); err == nil {
		t.Error("openRedis succeeded with invalid URL")
	}
}

func TestParseMemoryInfo(t *testing.T) {
	info := "# Memory\r\nused_memory:2048\r\nused_memory_dataset:1024\r\n"

	size, err := parseMemoryInfo(info)
	if err != nil {
		t.Fatalf("parseMemoryInfo failed: %v", err)
	}
	if size != 1024 {
		t.Errorf("size = %d, want used_memory_dataset 1024", size)
	}
}

func TestParseMemoryInfoFallback(t *testing.T) {
	info := "# Memory\r\nused_memory:2048\r\nmaxmemory:0\r\n"

	size, err := parseMemoryInfo(info)
	if err != nil {
		t.Fatalf("parseMemoryInfo failed: %v", err)
	}
	if size != 2048 {
		t.Errorf("size = %d, want used_memory 2048", size)
	}
}

func TestParseMemoryInfoEmpty(t *testing.T) {
	if _, err := parseMemoryInfo("# Memory\r\n"); err == nil {
		t.Error("parseMemoryInfo succeeded with no memory fields")
	}
}
