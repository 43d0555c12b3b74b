// Package datastore is a small JSON file-backed key/value store with
// periodic autosave. Values are stored as-is in memory and marshalled to
// JSON on save, so callers should stick to JSON-friendly types.
package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds tunables for a DataStore.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
}

// DefaultConfig returns the default configuration for the given file path.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
	}
}

// DataStore is safe for concurrent use.
type DataStore struct {
	mu     sync.RWMutex
	data   map[string]json.RawMessage
	dirty  bool
	file   string
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New opens (or creates) a store at filePath with default configuration.
func New(filePath string) (*DataStore, error) {
	return NewWithConfig(DefaultConfig(filePath))
}

// NewWithConfig opens (or creates) a store with a custom configuration.
func NewWithConfig(cfg *Config) (*DataStore, error) {
	if cfg == nil || cfg.FilePath == "" {
		return nil, fmt.Errorf("datastore: file path is required")
	}

	if dir := filepath.Dir(cfg.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("datastore: create directory: %w", err)
		}
	}

	ds := &DataStore{
		data: make(map[string]json.RawMessage),
		file: cfg.FilePath,
		done: make(chan struct{}),
	}

	if err := ds.load(); err != nil {
		return nil, err
	}

	if cfg.AutoSaveInterval > 0 {
		ds.wg.Add(1)
		go ds.autoSave(cfg.AutoSaveInterval)
	}

	return ds, nil
}

// Get unmarshals the value stored under key into out. It returns false when
// the key is absent.
func (ds *DataStore) Get(key string, out any) (bool, error) {
	ds.mu.RLock()
	raw, ok := ds.data[key]
	ds.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("datastore: decode %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous value.
func (ds *DataStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("datastore: encode %q: %w", key, err)
	}
	ds.mu.Lock()
	ds.data[key] = raw
	ds.dirty = true
	ds.mu.Unlock()
	return nil
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (ds *DataStore) Delete(key string) {
	ds.mu.Lock()
	if _, ok := ds.data[key]; ok {
		delete(ds.data, key)
		ds.dirty = true
	}
	ds.mu.Unlock()
}

// Keys returns all keys currently in the store.
func (ds *DataStore) Keys() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	keys := make([]string, 0, len(ds.data))
	for k := range ds.data {
		keys = append(keys, k)
	}
	return keys
}

// Close stops the autosave loop and flushes pending changes to disk.
func (ds *DataStore) Close() error {
	ds.mu.Lock()
	if ds.closed {
		ds.mu.Unlock()
		return nil
	}
	ds.closed = true
	ds.mu.Unlock()

	close(ds.done)
	ds.wg.Wait()
	return ds.Save()
}

// Save writes the store to disk if anything changed since the last save.
// The file is replaced atomically via a temp file rename.
func (ds *DataStore) Save() error {
	ds.mu.Lock()
	if !ds.dirty {
		ds.mu.Unlock()
		return nil
	}
	blob, err := json.MarshalIndent(ds.data, "", "  ")
	if err != nil {
		ds.mu.Unlock()
		return fmt.Errorf("datastore: encode store: %w", err)
	}
	ds.dirty = false
	ds.mu.Unlock()

	tmp := ds.file + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		ds.markDirty()
		return fmt.Errorf("datastore: write temp file: %w", err)
	}
	if err := os.Rename(tmp, ds.file); err != nil {
		ds.markDirty()
		return fmt.Errorf("datastore: replace store file: %w", err)
	}
	return nil
}

// markDirty re-flags unsaved data after a failed write so the next Save
// retries instead of taking the clean early-out.
func (ds *DataStore) markDirty() {
	ds.mu.Lock()
	ds.dirty = true
	ds.mu.Unlock()
}

func (ds *DataStore) load() error {
	blob, err := os.ReadFile(ds.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("datastore: read store file: %w", err)
	}
	if len(blob) == 0 {
		return nil
	}
	if err := json.Unmarshal(blob, &ds.data); err != nil {
		return fmt.Errorf("datastore: parse store file: %w", err)
	}
	return nil
}

func (ds *DataStore) autoSave(interval time.Duration) {
	defer ds.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = ds.Save()
		case <-ds.done:
			return
		}
	}
}
