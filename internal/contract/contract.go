// Package contract defines the configuration surface and the remote
// capabilities the core consumes, so reconciliation logic can be tested
// without touching the GitHub API.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/gitglance/gitglance/schema"
)

// ErrEmptyRepository marks the expected "no history yet" condition the
// remote reports for repositories without a default branch. It is a
// normal outcome, not a fault: callers treat it as zero branches and
// zero deltas.
var ErrEmptyRepository = errors.New("repository has no commit history")

// CommitPager yields one page of commit history per call, newest-first.
// The reconciler drives it with an explicit loop rather than recursion,
// and stops as soon as its id-based sentinel is found, so pages past
// the sentinel are never fetched.
type CommitPager interface {
	// Next returns the next page of commits and whether more pages may
	// follow. An empty page with more=true must be treated as
	// exhaustion by callers to rule out infinite pagination.
	Next(ctx context.Context) (commits []schema.Commit, more bool, err error)
}

// StatsSource is the remote statistics capability: identity lookup,
// repository and branch directories, and commit history. Sequences are
// returned fully drained; only commit history pages, since that is the
// one unbounded, rate-limited walk.
type StatsSource interface {
	// AuthenticatedUser resolves the tracked account's id and login.
	AuthenticatedUser(ctx context.Context) (schema.User, error)

	// VerifiedEmails lists the account's verified email addresses,
	// lower-cased.
	VerifiedEmails(ctx context.Context) ([]string, error)

	// OwnedRepositories lists repositories the user owns.
	OwnedRepositories(ctx context.Context) ([]schema.Repository, error)

	// AffiliatedRepositories lists repositories the user owns,
	// collaborates on, or can access through an organization.
	AffiliatedRepositories(ctx context.Context) ([]schema.Repository, error)

	// Branches lists the branches of a repository with their current
	// heads. An empty repository surfaces ErrEmptyRepository.
	Branches(ctx context.Context, repo schema.Repository) ([]schema.Branch, error)

	// Commits opens a newest-first walk of a branch's history. A
	// non-zero since narrows the walk to commits at or after that
	// instant; it is a cost optimization, not a correctness bound.
	Commits(repo schema.Repository, branch string, since time.Time) CommitPager
}
