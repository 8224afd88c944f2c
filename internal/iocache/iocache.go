// Package iocache persists the statistics snapshot between runs.
package iocache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitglance/gitglance/internal/keyhash"
	"github.com/gitglance/gitglance/schema"
)

// WriteError marks a failed snapshot write. A run's worth of API calls
// is lost when the final write fails, so callers must not ignore it;
// read-side problems never produce it.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write cache %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// SnapshotStore reads and writes the snapshot document for one tracked
// identity. The file is named by a hash of the identity so the cache
// directory does not reveal who is tracked.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore returns a store rooted at dir for the given user.
func NewSnapshotStore(dir, username string) *SnapshotStore {
	return &SnapshotStore{path: filepath.Join(dir, keyhash.Identity(username)+".json")}
}

// Path returns the location of the snapshot file.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Read returns the persisted snapshot. A missing or unparseable file
// yields an empty snapshot: starting fresh costs one full re-walk,
// which is preferable to refusing to run.
func (s *SnapshotStore) Read() schema.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return schema.Snapshot{}
	}

	var snap schema.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return schema.Snapshot{}
	}
	if snap == nil {
		snap = schema.Snapshot{}
	}
	return snap
}

// Write serializes the full snapshot and replaces the persisted file.
// The document is written to a temporary file and renamed into place,
// so a crash mid-write leaves the previous snapshot intact.
func (s *SnapshotStore) Write(snap schema.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.tmp")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// Clear removes the snapshot file. A missing file is not an error.
func (s *SnapshotStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
