package schema

import "time"

// ISOFormat is the timestamp layout persisted in branch checkpoints:
// ISO-8601 in UTC with a trailing Z and second precision.
const ISOFormat = "2006-01-02T15:04:05Z"

// FormatISO renders t as a checkpoint timestamp. A zero time renders as
// the empty string, which readers treat as "never seen".
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOFormat)
}

// ParseISO parses a checkpoint timestamp. Empty or malformed input
// yields a zero time rather than an error: a stale or missing window
// only widens the next walk, it never invalidates the cache.
func ParseISO(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(ISOFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CloneBranches returns a copy of the checkpoint map. Reconciliation
// mutates its working copy freely; callers keep the original intact for
// the failure path.
func CloneBranches(branches map[string]BranchCheckpoint) map[string]BranchCheckpoint {
	out := make(map[string]BranchCheckpoint, len(branches))
	for k, v := range branches {
		out[k] = v
	}
	return out
}
