package library

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

// Store persists the full library state as one unit. The Manager calls Save
// as the final step of every mutating operation; a failed save propagates to
// the caller since memory and disk would otherwise diverge silently.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

var snapshotJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps the snapshot as a single JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore for the given path, creating the parent
// directory so a first run succeeds.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the snapshot. A missing file is not an error: it loads as an
// empty snapshot.
func (s *FileStore) Load() (*Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
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

// Save writes the snapshot atomically via a temp-file rename.
func (s *FileStore) Save(snap *Snapshot) error {
	raw, err := snapshotJSON.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
