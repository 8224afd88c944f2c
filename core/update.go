package core

import (
	"context"
	"fmt"

	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/internal/iocache"
	"github.com/gitglance/gitglance/internal/keyhash"
	"github.com/gitglance/gitglance/schema"
)

// UpdateSnapshot brings the persisted snapshot up to date with the
// remote. It is a single linear pass: read the snapshot, reconcile
// every affiliated repository, merge the deltas into the cumulative
// totals, then write the whole document back once.
//
// A repository that fails reconciliation is logged and contributes zero
// deltas with unchanged checkpoints; one bad repository never aborts
// the run. A failed final write does abort, wrapped in
// iocache.WriteError, because silently discarding a run's worth of API
// calls would misreport success.
func UpdateSnapshot(
	ctx context.Context,
	source contract.StatsSource,
	store *iocache.SnapshotStore,
	hasher keyhash.Strategy,
	user schema.User,
	emails map[string]struct{},
) (schema.Snapshot, error) {
	snapshot := store.Read()

	repos, err := source.AffiliatedRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list repositories: %w", err)
	}

	for _, repo := range repos {
		repoKey := hasher.RepoKey(repo.FullName())
		prev := snapshot[repoKey]

		delta, branches, err := ReconcileRepo(ctx, source, user, emails, repo, repoKey, hasher, prev.Branches)
		if err != nil {
			contract.LogWarn("error processing a repository, setting its deltas to 0", err)
			delta = schema.Delta{}
			branches = prev.Branches
		}

		snapshot[repoKey] = schema.RepoStats{
			Branches:    branches,
			Additions:   prev.Additions + delta.Additions,
			Deletions:   prev.Deletions + delta.Deletions,
			UserCommits: prev.UserCommits + delta.UserCommits,
			Commits:     prev.Commits + delta.Commits,
		}
	}

	if err := store.Write(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
