package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileEntry struct {
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// FileBackend keeps all entries in a single JSON file.
type FileBackend struct {
	mu      sync.Mutex
	path    string
	entries map[string]fileEntry
}

// NewFileBackend creates a FileBackend for the given path.
// The file is read lazily on first access.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the cache file path.
func (b *FileBackend) Path() string {
	return b.path
}

// load reads the file once. A missing or unreadable file yields an empty cache
// that is rewritten on the next Store.
func (b *FileBackend) load() error {
	if b.entries != nil {
		return nil
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.entries = map[string]fileEntry{}
			return nil
		}
		return err
	}

	entries := map[string]fileEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		entries = map[string]fileEntry{}
	}
	b.entries = entries
	return nil
}

// Load returns the entry stored under key.
func (b *FileBackend) Load(key string) (Entry, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(); err != nil {
		return Entry{}, false, err
	}
	e, ok := b.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	return Entry{Key: key, Value: e.Value, Timestamp: e.Timestamp}, true, nil
}

// Store writes entry and flushes the file.
func (b *FileBackend) Store(entry Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(); err != nil {
		return err
	}
	b.entries[entry.Key] = fileEntry{Value: entry.Value, Timestamp: entry.Timestamp}
	return b.flush()
}

// Delete removes key and flushes the file.
func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(); err != nil {
		return err
	}
	if _, ok := b.entries[key]; !ok {
		return nil
	}
	delete(b.entries, key)
	return b.flush()
}

// Close is a no-op; every write is flushed immediately.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) flush() error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b.entries, "", "  ")
	if err != nil {
		return err
	}

	// Write via temp file and rename.
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}
