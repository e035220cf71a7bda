package backend

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

type sqliteStore struct {
	db       *sql.DB
	path     string
	readStmt *sql.Stmt
}

func openSQLite(dir, _ string) (harness.Store, error) {
	path := filepath.Join(dir, "sqlite.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	stmts := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"CREATE TABLE vectors (id INTEGER PRIMARY KEY, data BLOB)",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()

			return nil, fmt.Errorf("%s: %w", stmt, err)
		}
	}

	readStmt, err := db.Prepare("SELECT data FROM vectors WHERE id = ?")
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("prepare read: %w", err)
	}

	return &sqliteStore{db: db, path: path, readStmt: readStmt}, nil
}

func (s *sqliteStore) WriteAll(entries []workload.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO vectors VALUES (?, ?)")
	if err != nil {
		tx.Rollback()

		return fmt.Errorf("prepare insert: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		if _, err := stmt.Exec(e.ID, workload.Encode(e)); err != nil {
			stmt.Close()
			tx.Rollback()

			return fmt.Errorf("insert id %d: %w", e.ID, err)
		}
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()

		return fmt.Errorf("close insert stmt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *sqliteStore) Size() (int64, error) {
	// Fold the WAL back into the main file so its size reflects the
	// whole dataset.
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return 0, fmt.Errorf("checkpoint: %w", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", s.path, err)
	}

	return info.Size(), nil
}

func (s *sqliteStore) ReadAll(entries []workload.Entry) error {
	var data []byte

	for i := range entries {
		if err := s.readStmt.QueryRow(entries[i].ID).Scan(&data); err != nil {
			return fmt.Errorf("select id %d: %w", entries[i].ID, err)
		}
	}

	return nil
}

func (s *sqliteStore) Close() error {
	s.readStmt.Close()

	return s.db.Close()
}
