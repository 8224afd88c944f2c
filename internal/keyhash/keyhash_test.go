package keyhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		s := NewSalted("secret")
		assert.Equal(t, s.RepoKey("alice/tool"), s.RepoKey("alice/tool"))
	})

	t.Run("salt changes key", func(t *testing.T) {
		a := NewSalted("salt-a")
		b := NewSalted("salt-b")
		assert.NotEqual(t, a.RepoKey("alice/tool"), b.RepoKey("alice/tool"))
	})

	t.Run("name changes key", func(t *testing.T) {
		s := NewSalted("secret")
		assert.NotEqual(t, s.RepoKey("alice/tool"), s.RepoKey("alice/tools"))
	})

	t.Run("empty salt degrades to sha256", func(t *testing.T) {
		s := NewSalted("")
		// sha256("alice/tool")
		assert.Equal(t,
			"59ce9d51af4e59528e05c51b3d214f7def614e3f9b5c5a9712655a7434e7c6fb",
			s.RepoKey("alice/tool"))
	})
}

func TestBranchKey(t *testing.T) {
	s := NewSalted("secret")
	repoA := s.RepoKey("alice/tool")
	repoB := s.RepoKey("alice/other")

	t.Run("bound to repository", func(t *testing.T) {
		assert.NotEqual(t, s.BranchKey("main", repoA), s.BranchKey("main", repoB))
	})

	t.Run("distinct branches differ", func(t *testing.T) {
		assert.NotEqual(t, s.BranchKey("main", repoA), s.BranchKey("dev", repoA))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, s.BranchKey("main", repoA), s.BranchKey("main", repoA))
	})
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, Identity("octocat"), Identity("octocat"))
	assert.NotEqual(t, Identity("octocat"), Identity("octodog"))
	assert.Len(t, Identity("octocat"), 64)
}
