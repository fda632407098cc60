package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Entry is a single stored value. Value holds JSON text.
type Entry struct {
	Key       string
	Value     string
	Timestamp time.Time
}

// Backend persists raw cache entries.
type Backend interface {
	Load(key string) (Entry, bool, error)
	Store(entry Entry) error
	Delete(key string) error
	Close() error
}

// Cache is a typed key/value store that survives restarts.
// Values that no longer decode are treated as absent and cleared.
type Cache struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// New wraps a backend.
func New(backend Backend, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		backend: backend,
		logger:  logger.With("component", "cache"),
		now:     time.Now,
	}
}

// Get decodes the value stored under key into v.
// Returns false if the key is missing, unreadable or corrupt.
func (c *Cache) Get(key string, v any) bool {
	entry, ok := c.Entry(key)
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(entry.Value), v); err != nil {
		c.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		if err := c.backend.Delete(key); err != nil {
			c.logger.Warn("failed to clear corrupt cache entry", "key", key, "error", err)
		}
		return false
	}
	return true
}

// Entry returns the raw entry stored under key.
func (c *Cache) Entry(key string) (Entry, bool) {
	entry, ok, err := c.backend.Load(key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return Entry{}, false
	}
	return entry, ok
}

// Set encodes v as JSON and stores it under key.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}
	if err := c.backend.Store(Entry{Key: key, Value: string(data), Timestamp: c.now()}); err != nil {
		return fmt.Errorf("writing cache entry %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (c *Cache) Remove(key string) error {
	if err := c.backend.Delete(key); err != nil {
		return fmt.Errorf("removing cache entry %q: %w", key, err)
	}
	return nil
}

// Close releases the backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// Options selects and locates the cache backend.
type Options struct {
	Backend string // "file", "sqlite" or "" to auto-detect
	Path    string // empty = default location for the backend
}

// DefaultPath returns the default cache location for a backend:
// ~/.cache/hive/cache.json or ~/.cache/hive/cache.db
func DefaultPath(backend string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	name := "cache.json"
	if backend == BackendSQLite {
		name = "cache.db"
	}
	return filepath.Join(dir, "hive", name), nil
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open opens the configured backend.
// Without an explicit backend, SQLite is used if its database already exists.
func Open(opts Options, logger *slog.Logger) (*Cache, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendFile
		if sqlitePath, err := DefaultPath(BackendSQLite); err == nil {
			if _, err := os.Stat(sqlitePath); err == nil {
				backend = BackendSQLite
			}
		}
	}

	path := opts.Path
	if path == "" {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendFile:
		return New(NewFileBackend(path), logger), nil
	case BackendSQLite:
		b, err := NewSQLiteBackend(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return New(b, logger), nil
	default:
		return nil, errors.New("unknown cache backend: " + backend)
	}
}
