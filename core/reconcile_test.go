package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/internal/keyhash"
	"github.com/gitglance/gitglance/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves scripted branch listings and commit histories. Its
// pager honors the since filter the way the real API does: inclusive
// lower bound on the committer timestamp, newest-first order.
type fakeSource struct {
	contract.MockSource // Unused interface methods panic via the mock

	affiliated  []schema.Repository
	branches    map[string][]schema.Branch // keyed by repo full name
	history     map[string][]schema.Commit // keyed by "repo@branch", newest-first
	branchesErr error
	errFor      map[string]error // per-repo branch listing failures
	pageSize    int
	brokenPager bool // emit an empty page with more=true
}

func (f *fakeSource) AffiliatedRepositories(_ context.Context) ([]schema.Repository, error) {
	return f.affiliated, nil
}

func (f *fakeSource) Branches(_ context.Context, repo schema.Repository) ([]schema.Branch, error) {
	if err := f.errFor[repo.FullName()]; err != nil {
		return nil, err
	}
	if f.branchesErr != nil {
		return nil, f.branchesErr
	}
	return f.branches[repo.FullName()], nil
}

func (f *fakeSource) Commits(repo schema.Repository, branch string, since time.Time) contract.CommitPager {
	if f.brokenPager {
		return &stuckPager{}
	}

	var filtered []schema.Commit
	for _, c := range f.history[repo.FullName()+"@"+branch] {
		if !since.IsZero() && c.CommittedAt.Before(since) {
			continue
		}
		filtered = append(filtered, c)
	}

	size := f.pageSize
	if size <= 0 {
		size = len(filtered)
	}
	var pages [][]schema.Commit
	for start := 0; start < len(filtered); start += size {
		end := min(start+size, len(filtered))
		pages = append(pages, filtered[start:end])
	}
	return contract.NewSlicePager(pages...)
}

// stuckPager simulates a remote that keeps signalling more pages while
// returning nothing.
type stuckPager struct{}

func (p *stuckPager) Next(_ context.Context) ([]schema.Commit, bool, error) {
	return nil, true, nil
}

var (
	testUser   = schema.User{ID: 42, Login: "alice"}
	testEmails = EmailSet([]string{"alice@example.com"})
	testHasher = keyhash.NewSalted("test-salt")
	testRepo   = schema.Repository{Owner: "alice", Name: "tool"}
)

func commitAt(sha string, authorID int64, adds, dels int, ts time.Time) schema.Commit {
	return schema.Commit{
		SHA:         sha,
		AuthorID:    authorID,
		Additions:   adds,
		Deletions:   dels,
		CommittedAt: ts,
	}
}

// threeCommitSource reproduces the alice/tool scenario: one branch
// "main" with commits c1..c3 (oldest to newest), all authored by the
// tracked user, additions (10,5,2) and deletions (1,0,1).
func threeCommitSource() *fakeSource {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &fakeSource{
		branches: map[string][]schema.Branch{
			"alice/tool": {{Name: "main", HeadSHA: "c3"}},
		},
		history: map[string][]schema.Commit{
			"alice/tool@main": {
				commitAt("c3", 42, 2, 1, base.Add(2*time.Hour)),
				commitAt("c2", 42, 5, 0, base.Add(time.Hour)),
				commitAt("c1", 42, 10, 1, base),
			},
		},
	}
}

func reconcile(t *testing.T, src contract.StatsSource, cached map[string]schema.BranchCheckpoint) (schema.Delta, map[string]schema.BranchCheckpoint) {
	t.Helper()
	repoKey := testHasher.RepoKey(testRepo.FullName())
	delta, branches, err := ReconcileRepo(context.Background(), src, testUser, testEmails, testRepo, repoKey, testHasher, cached)
	require.NoError(t, err)
	return delta, branches
}

func TestReconcileFirstRun(t *testing.T) {
	src := threeCommitSource()
	delta, branches := reconcile(t, src, nil)

	assert.Equal(t, schema.Delta{Additions: 17, Deletions: 2, UserCommits: 3, Commits: 3}, delta)

	repoKey := testHasher.RepoKey("alice/tool")
	cp := branches[testHasher.BranchKey("main", repoKey)]
	assert.Equal(t, "c3", cp.Head)
	assert.Equal(t, "2024-05-01T14:00:00Z", cp.LastSeen, "last seen is the head's committer time")
}

func TestReconcileIdempotence(t *testing.T) {
	src := threeCommitSource()
	_, branches := reconcile(t, src, nil)

	delta, after := reconcile(t, src, branches)
	assert.Zero(t, delta, "unchanged heads must produce zero deltas")
	assert.Equal(t, branches, after, "checkpoints must be unchanged")
}

func TestReconcileIncremental(t *testing.T) {
	src := threeCommitSource()
	_, branches := reconcile(t, src, nil)

	// One new authored commit c4 (+4/-0) on top of c3.
	c4Time := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	src.branches["alice/tool"] = []schema.Branch{{Name: "main", HeadSHA: "c4"}}
	src.history["alice/tool@main"] = append(
		[]schema.Commit{commitAt("c4", 42, 4, 0, c4Time)},
		src.history["alice/tool@main"]...,
	)

	delta, after := reconcile(t, src, branches)
	assert.Equal(t, schema.Delta{Additions: 4, Deletions: 0, UserCommits: 1, Commits: 1}, delta,
		"walk must stop at the previous head")

	repoKey := testHasher.RepoKey("alice/tool")
	cp := after[testHasher.BranchKey("main", repoKey)]
	assert.Equal(t, "c4", cp.Head)
	assert.Equal(t, "2024-05-02T09:00:00Z", cp.LastSeen)
}

func TestReconcileIncrementalMatchesFullWalk(t *testing.T) {
	// Checkpointed runs merged together must equal a from-scratch walk.
	src := threeCommitSource()
	firstDelta, branches := reconcile(t, src, nil)

	c4Time := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	src.branches["alice/tool"] = []schema.Branch{{Name: "main", HeadSHA: "c4"}}
	src.history["alice/tool@main"] = append(
		[]schema.Commit{commitAt("c4", 42, 4, 0, c4Time)},
		src.history["alice/tool@main"]...,
	)
	secondDelta, _ := reconcile(t, src, branches)

	fullDelta, _ := reconcile(t, src, nil)

	merged := schema.Delta{
		Additions:   firstDelta.Additions + secondDelta.Additions,
		Deletions:   firstDelta.Deletions + secondDelta.Deletions,
		UserCommits: firstDelta.UserCommits + secondDelta.UserCommits,
		Commits:     firstDelta.Commits + secondDelta.Commits,
	}
	assert.Equal(t, fullDelta, merged)
}

func TestReconcileCrossBranchDedupe(t *testing.T) {
	// feature was branched from main after c2: both branches reach
	// c1 and c2, which must be counted exactly once.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{
		branches: map[string][]schema.Branch{
			"alice/tool": {
				{Name: "main", HeadSHA: "c3"},
				{Name: "feature", HeadSHA: "f1"},
			},
		},
		history: map[string][]schema.Commit{
			"alice/tool@main": {
				commitAt("c3", 42, 2, 1, base.Add(2*time.Hour)),
				commitAt("c2", 42, 5, 0, base.Add(time.Hour)),
				commitAt("c1", 42, 10, 1, base),
			},
			"alice/tool@feature": {
				commitAt("f1", 42, 7, 3, base.Add(3*time.Hour)),
				commitAt("c2", 42, 5, 0, base.Add(time.Hour)),
				commitAt("c1", 42, 10, 1, base),
			},
		},
	}

	delta, _ := reconcile(t, src, nil)
	assert.Equal(t, schema.Delta{Additions: 24, Deletions: 5, UserCommits: 5, Commits: 5}, delta)
}

func TestReconcileMixedAuthors(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{
		branches: map[string][]schema.Branch{
			"alice/tool": {{Name: "main", HeadSHA: "c2"}},
		},
		history: map[string][]schema.Commit{
			"alice/tool@main": {
				commitAt("c2", 99, 100, 50, base.Add(time.Hour)), // someone else
				commitAt("c1", 42, 10, 1, base),
			},
		},
	}

	delta, _ := reconcile(t, src, nil)
	assert.Equal(t, schema.Delta{Additions: 10, Deletions: 1, UserCommits: 1, Commits: 2}, delta,
		"foreign commits count toward the total but not toward authored lines")
}

func TestReconcileEmptyRepository(t *testing.T) {
	t.Run("branch listing reports empty", func(t *testing.T) {
		src := &fakeSource{branchesErr: contract.ErrEmptyRepository}
		delta, branches := reconcile(t, src, nil)
		assert.Zero(t, delta)
		assert.Empty(t, branches)
	})

	t.Run("no branches at all", func(t *testing.T) {
		src := &fakeSource{branches: map[string][]schema.Branch{}}
		delta, branches := reconcile(t, src, nil)
		assert.Zero(t, delta)
		assert.Empty(t, branches)
	})

	t.Run("zero-commit branch", func(t *testing.T) {
		src := &fakeSource{
			branches: map[string][]schema.Branch{
				"alice/tool": {{Name: "main", HeadSHA: "c0"}},
			},
			history: map[string][]schema.Commit{},
		}
		delta, _ := reconcile(t, src, nil)
		assert.Zero(t, delta)
	})
}

func TestReconcileFaultPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	src := &fakeSource{branchesErr: boom}

	repoKey := testHasher.RepoKey(testRepo.FullName())
	_, _, err := ReconcileRepo(context.Background(), src, testUser, testEmails, testRepo, repoKey, testHasher, nil)
	assert.ErrorIs(t, err, boom)
}

func TestReconcilePaginated(t *testing.T) {
	// Same totals regardless of page size.
	src := threeCommitSource()
	src.pageSize = 1

	delta, _ := reconcile(t, src, nil)
	assert.Equal(t, schema.Delta{Additions: 17, Deletions: 2, UserCommits: 3, Commits: 3}, delta)
}

func TestReconcileStuckPagerTerminates(t *testing.T) {
	src := threeCommitSource()
	src.brokenPager = true

	delta, _ := reconcile(t, src, nil)
	assert.Zero(t, delta, "an empty page with more=true must terminate the walk")
}

func TestReconcileForcePush(t *testing.T) {
	// History rewrite: the cached head r0 no longer exists. The walk
	// runs to exhaustion within the last-seen window and the checkpoint
	// moves to the new head.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{
		branches: map[string][]schema.Branch{
			"alice/tool": {{Name: "main", HeadSHA: "n2"}},
		},
		history: map[string][]schema.Commit{
			"alice/tool@main": {
				commitAt("n2", 42, 3, 0, base.Add(2*time.Hour)),
				commitAt("n1", 42, 1, 1, base.Add(time.Hour)),
			},
		},
	}

	cached := map[string]schema.BranchCheckpoint{
		testHasher.BranchKey("main", testHasher.RepoKey("alice/tool")): {
			Head:     "r0",
			LastSeen: schema.FormatISO(base),
		},
	}

	delta, after := reconcile(t, src, cached)
	assert.Equal(t, schema.Delta{Additions: 4, Deletions: 1, UserCommits: 2, Commits: 2}, delta)

	cp := after[testHasher.BranchKey("main", testHasher.RepoKey("alice/tool"))]
	assert.Equal(t, "n2", cp.Head)
}

func TestReconcileLastSeenNeverRegresses(t *testing.T) {
	// Head moved but the remote reports no commit timestamps: the
	// previous window must be kept rather than cleared.
	src := &fakeSource{
		branches: map[string][]schema.Branch{
			"alice/tool": {{Name: "main", HeadSHA: "c2"}},
		},
		history: map[string][]schema.Commit{
			"alice/tool@main": {
				{SHA: "c2", AuthorID: 42, Additions: 1},
			},
		},
	}

	prevSeen := "2024-04-01T00:00:00Z"
	key := testHasher.BranchKey("main", testHasher.RepoKey("alice/tool"))
	cached := map[string]schema.BranchCheckpoint{
		key: {Head: "c1", LastSeen: prevSeen},
	}

	// since filter: the zero CommittedAt of c2 is before prevSeen, so
	// the fake filters it out and the walk sees nothing.
	_, after := reconcile(t, src, cached)
	assert.Equal(t, "c2", after[key].Head, "head still advances")
	assert.Equal(t, prevSeen, after[key].LastSeen, "window kept from the previous checkpoint")
}
