package game

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileStore is a Store backed by a small JSON file, the desktop analogue
// of browser local storage. All failures degrade to "key absent": a
// missing or unreadable file never prevents the game from starting.
type FileStore struct {
	path   string
	logger *log.Logger
	data   map[string]string
}

// NewFileStore opens (or lazily creates) the store file at path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	fs := &FileStore{
		path:   path,
		logger: logger.With("component", "store"),
		data:   make(map[string]string),
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.logger.Warn("store unreadable, starting empty", "path", path, "err", err)
		}
		return fs
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		fs.logger.Warn("store corrupt, starting empty", "path", path, "err", err)
		fs.data = make(map[string]string)
	}
	return fs
}

// DefaultStorePath places the store under the user config directory,
// falling back to the working directory when that is unavailable.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "skystrike.json"
	}
	return filepath.Join(dir, "skystrike", "store.json")
}

// GetItem returns the stored value for key, if present.
func (fs *FileStore) GetItem(key string) (string, bool) {
	v, ok := fs.data[key]
	return v, ok
}

// SetItem stores and flushes the value.
func (fs *FileStore) SetItem(key, value string) error {
	fs.data[key] = value
	return fs.flush()
}

// RemoveItem deletes and flushes the key. Removing an absent key is a
// no-op that still succeeds.
func (fs *FileStore) RemoveItem(key string) error {
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

func (fs *FileStore) flush() error {
	raw, err := json.Marshal(fs.data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fs.path, raw, 0o644)
}

// MemStore is an in-memory Store for tests and for hosts with no writable
// storage.
type MemStore struct {
	data map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

// GetItem returns the stored value for key, if present.
func (ms *MemStore) GetItem(key string) (string, bool) {
	v, ok := ms.data[key]
	return v, ok
}

// SetItem stores the value.
func (ms *MemStore) SetItem(key, value string) error {
	ms.data[key] = value
	return nil
}

// RemoveItem deletes the key.
func (ms *MemStore) RemoveItem(key string) error {
	delete(ms.data, key)
	return nil
}
