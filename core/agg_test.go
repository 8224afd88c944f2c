package core

import (
	"context"
	"testing"

	"github.com/gitglance/gitglance/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalUserCommits(t *testing.T) {
	tests := []struct {
		name     string
		snapshot schema.Snapshot
		expected int
	}{
		{
			name:     "empty snapshot",
			snapshot: schema.Snapshot{},
			expected: 0,
		},
		{
			name: "sums across repositories",
			snapshot: schema.Snapshot{
				"a": {UserCommits: 3},
				"b": {UserCommits: 7},
			},
			expected: 10,
		},
		{
			name: "zero-value entries count as zero",
			snapshot: schema.Snapshot{
				"a": {},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalUserCommits(tt.snapshot))
		})
	}
}

func TestTotalLOC(t *testing.T) {
	snap := schema.Snapshot{
		"a": {Additions: 100, Deletions: 40},
		"b": {Additions: 25, Deletions: 5},
	}

	net, adds, dels := TotalLOC(snap)
	assert.Equal(t, 80, net)
	assert.Equal(t, 125, adds)
	assert.Equal(t, 45, dels)

	net, adds, dels = TotalLOC(schema.Snapshot{})
	assert.Zero(t, net)
	assert.Zero(t, adds)
	assert.Zero(t, dels)
}

func TestCountOwned(t *testing.T) {
	src := &fakeSource{}
	src.On("OwnedRepositories", context.Background()).Return([]schema.Repository{
		{Owner: "alice", Name: "tool", Stargazers: 12},
		{Owner: "alice", Name: "site", Stargazers: 3},
	}, nil)

	repos, stars, err := CountOwned(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, repos)
	assert.Equal(t, 15, stars)
}
