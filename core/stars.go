package core

import (
	"context"

	"github.com/gitglance/gitglance/internal/contract"
)

// CountOwned returns the owned-repository count and the total stargazer
// count across those repositories.
func CountOwned(ctx context.Context, source contract.StatsSource) (repos, stars int, err error) {
	owned, err := source.OwnedRepositories(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, repo := range owned {
		stars += repo.Stargazers
	}
	return len(owned), stars, nil
}
