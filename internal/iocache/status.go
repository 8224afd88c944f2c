package iocache

import "os"

// Status describes the persisted snapshot for the cache CLI commands.
type Status struct {
	Path         string // Snapshot file location
	Exists       bool   // Whether a snapshot file is present
	SizeBytes    int64  // File size, 0 when absent
	Repositories int    // Number of cached repositories
}

// GetStatus inspects the snapshot file and its contents.
func (s *SnapshotStore) GetStatus() Status {
	st := Status{Path: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		return st
	}
	st.Exists = true
	st.SizeBytes = info.Size()
	st.Repositories = len(s.Read())
	return st
}
