package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its configuration in package state.
var migrateMu sync.Mutex

// SQLiteBackend stores entries in a SQLite database.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (and migrates) the database at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db, path: path}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	return b.path
}

// Load returns the entry stored under key.
func (b *SQLiteBackend) Load(key string) (Entry, bool, error) {
	var value, updatedAt string
	err := b.db.QueryRow(
		"SELECT value, updated_at FROM cache_entries WHERE key = ?", key,
	).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	ts, _ := time.Parse(time.RFC3339Nano, updatedAt)
	return Entry{Key: key, Value: value, Timestamp: ts}, true, nil
}

// Store inserts or replaces entry.
func (b *SQLiteBackend) Store(entry Entry) error {
	_, err := b.db.Exec(`
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, entry.Key, entry.Value, entry.Timestamp.UTC().Format(time.RFC3339Nano))
	return err
}

// Delete removes key.
func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.db.Exec("DELETE FROM cache_entries WHERE key = ?", key)
	return err
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
