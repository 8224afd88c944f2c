package core

import "github.com/gitglance/gitglance/schema"

// TotalUserCommits sums authored commits across all cached repositories.
func TotalUserCommits(snapshot schema.Snapshot) int {
	total := 0
	for _, repo := range snapshot {
		total += repo.UserCommits
	}
	return total
}

// TotalLOC reduces the snapshot into lines-of-code totals: net
// (additions minus deletions), additions, and deletions.
func TotalLOC(snapshot schema.Snapshot) (net, additions, deletions int) {
	for _, repo := range snapshot {
		additions += repo.Additions
		deletions += repo.Deletions
	}
	return additions - deletions, additions, deletions
}
