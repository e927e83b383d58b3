// Package prefs persists small string key/value state across process runs:
// the schema-initialized flag, the campaign id, and the session keys. Writes
// are synchronous and atomic (temp file, fsync, rename).
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys.
const (
	KeySchemaInitialized = "schema_initialized"
	KeyCampaignID        = "campaign_id"
)

const fileName = "prefs.json"

// Store is a file-backed string key/value store. All mutations are written
// through to disk before returning.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the prefs file from dataDir, creating the directory if needed.
// A missing file is not an error; the store starts empty.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{
		path:   filepath.Join(dataDir, fileName),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading prefs: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing prefs: %w", err)
	}
	return s, nil
}

// Get returns the value for key, or "" when the key is absent.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// GetBool returns true when the key holds the literal "true".
func (s *Store) GetBool(key string) bool {
	return s.Get(key) == "true"
}

// Set stores key=value and writes the file synchronously.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// SetBool stores "true" or "false" under key.
func (s *Store) SetBool(key string, value bool) error {
	if value {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}

// Delete removes key and writes the file synchronously. Deleting an absent
// key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush atomically rewrites the prefs file using the temp-file, fsync,
// rename pattern. The caller must hold s.mu.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling prefs: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing prefs: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming prefs: %w", err)
	}
	return nil
}
