package core

import (
	"context"
	"errors"
	"time"

	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/internal/keyhash"
	"github.com/gitglance/gitglance/schema"
)

// ReconcileRepo brings one repository's branch checkpoints up to date
// against the remote and returns the deltas produced by commits that
// are new since the last run.
//
// Per branch: an unchanged head skips the branch outright, since the
// paginated history walk is the expensive, rate-limited operation.
// Otherwise the branch is walked newest-first, bounded below by the
// cached last-seen timestamp as a cost heuristic; the authoritative
// terminator is reaching the previously recorded head id. Commit ids
// already counted for another branch in this same call are skipped, so
// history reachable from several branches is counted once.
//
// Remote faults propagate to the caller. The expected empty-repository
// condition is not a fault: it yields zero deltas and unchanged
// checkpoints.
func ReconcileRepo(
	ctx context.Context,
	source contract.StatsSource,
	user schema.User,
	emails map[string]struct{},
	repo schema.Repository,
	repoKey string,
	hasher keyhash.Strategy,
	cached map[string]schema.BranchCheckpoint,
) (schema.Delta, map[string]schema.BranchCheckpoint, error) {
	var delta schema.Delta
	branches := schema.CloneBranches(cached)
	processed := make(map[string]struct{})

	remoteBranches, err := source.Branches(ctx, repo)
	if err != nil {
		if errors.Is(err, contract.ErrEmptyRepository) {
			return schema.Delta{}, branches, nil
		}
		return schema.Delta{}, nil, err
	}

	for _, branch := range remoteBranches {
		branchKey := hasher.BranchKey(branch.Name, repoKey)
		prev := branches[branchKey]

		if prev.Head != "" && prev.Head == branch.HeadSHA {
			continue
		}

		headSeen, err := walkBranch(ctx, source, user, emails, repo, branch, prev, processed, &delta)
		if err != nil {
			if errors.Is(err, contract.ErrEmptyRepository) {
				continue
			}
			return schema.Delta{}, nil, err
		}

		branches[branchKey] = schema.BranchCheckpoint{
			Head:     branch.HeadSHA,
			LastSeen: resolveLastSeen(headSeen, branch, prev),
		}
	}

	return delta, branches, nil
}

// walkBranch walks one branch's history newest-first and accumulates
// deltas into delta. It returns the committer timestamp of the head
// commit when the walk observed it, or the zero time.
func walkBranch(
	ctx context.Context,
	source contract.StatsSource,
	user schema.User,
	emails map[string]struct{},
	repo schema.Repository,
	branch schema.Branch,
	prev schema.BranchCheckpoint,
	processed map[string]struct{},
	delta *schema.Delta,
) (time.Time, error) {
	pager := source.Commits(repo, branch.Name, schema.ParseISO(prev.LastSeen))

	var headSeen time.Time
	first := true

	for {
		page, more, err := pager.Next(ctx)
		if err != nil {
			return headSeen, err
		}

		for _, commit := range page {
			if first {
				// Newest-first, so the first commit of the walk is the
				// branch head.
				headSeen = commit.CommittedAt
				first = false
			}
			if commit.SHA == prev.Head {
				// Everything from here down was counted in a prior run.
				return headSeen, nil
			}
			if _, dup := processed[commit.SHA]; dup {
				continue
			}
			processed[commit.SHA] = struct{}{}

			delta.Commits++
			if IsAuthoredBy(user, emails, commit) {
				delta.Additions += commit.Additions
				delta.Deletions += commit.Deletions
				delta.UserCommits++
			}
		}

		// An empty page claiming more data would loop forever; treat
		// it as exhaustion.
		if !more || len(page) == 0 {
			return headSeen, nil
		}
	}
}

// resolveLastSeen picks the new last-seen timestamp for a checkpoint:
// the walked head's committer time, else the head time the branch
// listing reported, else the previous value. The window never regresses
// and a missing date never fails the run.
func resolveLastSeen(walked time.Time, branch schema.Branch, prev schema.BranchCheckpoint) string {
	if !walked.IsZero() {
		return schema.FormatISO(walked)
	}
	if !branch.HeadCommittedAt.IsZero() {
		return schema.FormatISO(branch.HeadCommittedAt)
	}
	return prev.LastSeen
}
