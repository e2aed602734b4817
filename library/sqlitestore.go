package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the snapshot document in a single-row SQLite table. The
// snapshot itself stays an opaque JSON unit; SQLite only buys atomic writes
// and a familiar on-disk format.
type SQLiteStore struct {
	db       *sql.DB
	saveStmt *sql.Stmt
}

const snapshotSchemaVersion = 1

// NewSQLiteStore opens (or creates) the database at dbPath, applies schema
// migrations, and prepares the upsert statement.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applySnapshotMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	stmt, err := db.Prepare(`INSERT INTO snapshots(id, data, saved_at) VALUES(1, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(id) DO UPDATE SET data=excluded.data, saved_at=excluded.saved_at`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, saveStmt: stmt}, nil
}

// Close releases the prepared statement and closes the DB.
func (s *SQLiteStore) Close() error {
	if s.saveStmt != nil {
		s.saveStmt.Close()
	}
	return s.db.Close()
}

func applySnapshotMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= snapshotSchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
            id INTEGER PRIMARY KEY CHECK (id = 1),
            data TEXT NOT NULL,
            saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, snapshotSchemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the snapshot row. An empty table loads as an empty snapshot.
func (s *SQLiteStore) Load() (*Snapshot, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE id=1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap := NewSnapshot()
	if err := snapshotJSON.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save upserts the snapshot row.
func (s *SQLiteStore) Save(snap *Snapshot) error {
	raw, err := snapshotJSON.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.saveStmt.Exec(raw); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
