// Package schema has the domain types and cache model for all parts of gitglance.
package schema

import "time"

// User identifies the tracked GitHub account.
type User struct {
	ID    int64  // Numeric account id
	Login string // Account login name
}

// Repository is one repository visible to the tracked user.
type Repository struct {
	Owner      string // Owner login
	Name       string // Repository name without owner
	Stargazers int    // Stargazer count at fetch time
}

// FullName returns the owner-qualified repository name, e.g. "alice/tool".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Branch is one branch of a repository with its current head.
type Branch struct {
	Name            string    // Branch name
	HeadSHA         string    // Commit id the branch currently points at
	HeadCommittedAt time.Time // Committer timestamp of the head, zero when unknown
}

// Commit carries the per-commit fields the reconciler consumes.
// Author fields are optional: commits by deleted accounts or bots may
// carry none of them.
type Commit struct {
	SHA         string    // Commit id
	AuthorID    int64     // Platform account id of the author, 0 when unresolved
	AuthorLogin string    // Platform login of the author, empty when unresolved
	AuthorEmail string    // Committer-supplied author email, empty when absent
	CommittedAt time.Time // Committer timestamp
	Additions   int       // Lines added by the commit
	Deletions   int       // Lines deleted by the commit
}

// BranchCheckpoint records how far a branch has been walked. Head is the
// last counted commit id; LastSeen is an ISO-8601 UTC timestamp used to
// narrow future history queries, or empty when never resolved.
type BranchCheckpoint struct {
	Head     string `json:"head"`
	LastSeen string `json:"last_seen"`
}

// RepoStats is the cached state for one repository. The numeric fields
// are cumulative totals, only ever increased by merging reconciliation
// deltas. Branch keys are hashed, the same as repository keys.
type RepoStats struct {
	Branches    map[string]BranchCheckpoint `json:"branches"`
	Additions   int                         `json:"additions"`
	Deletions   int                         `json:"deletions"`
	UserCommits int                         `json:"user_commits"`
	Commits     int                         `json:"commits"`
}

// Snapshot is the entire persisted cache document for one tracked
// identity, keyed by hashed repository name.
type Snapshot map[string]RepoStats

// Delta is the incremental contribution of one reconciliation call,
// merged into a repository's cumulative totals.
type Delta struct {
	Additions   int
	Deletions   int
	UserCommits int
	Commits     int
}

// Summary is the complete metric set handed to the rendering step.
type Summary struct {
	Age       string // Formatted time since the configured birthday
	Stars     int    // Total stargazers across owned repositories
	Repos     int    // Owned repository count
	Commits   int    // Total authored commits
	NetLOC    int    // Additions minus deletions
	Additions int    // Total lines added
	Deletions int    // Total lines deleted
}
