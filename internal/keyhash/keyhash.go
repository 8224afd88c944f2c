// Package keyhash derives the opaque cache identifiers used in place of
// plaintext repository and branch names, so the persisted snapshot does
// not leak what the tracked user has access to.
package keyhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Strategy derives stable cache keys for repositories and branches.
// Identical input and identical key always produce the same output; the
// mapping is one-way.
type Strategy interface {
	// RepoKey derives the cache key for an owner-qualified repository name.
	RepoKey(fullName string) string

	// BranchKey derives the cache key for a branch, bound to its
	// repository's key so equal branch names in different repositories
	// do not collide.
	BranchKey(branch, repoKey string) string
}

// Salted is the default Strategy: HMAC-SHA256 under a secret key. With
// an empty key it degrades to plain SHA-256, which matches caches
// written before salting existed.
type Salted struct {
	key []byte
}

var _ Strategy = Salted{} // Compile-time check

// NewSalted returns a Salted strategy for the given secret. The secret
// may be empty.
func NewSalted(secret string) Salted {
	return Salted{key: []byte(secret)}
}

// RepoKey implements Strategy.
func (s Salted) RepoKey(fullName string) string {
	return s.sum(fullName)
}

// BranchKey implements Strategy.
func (s Salted) BranchKey(branch, repoKey string) string {
	return s.sum(branch + ":" + repoKey)
}

func (s Salted) sum(input string) string {
	if len(s.key) == 0 {
		digest := sha256.Sum256([]byte(input))
		return hex.EncodeToString(digest[:])
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(input))
	return hex.EncodeToString(mac.Sum(nil))
}

// Identity derives the cache file name component for a tracked user.
// It is intentionally unsalted: the file name only needs to be stable
// per user, and pre-salt caches are located the same way.
func Identity(username string) string {
	digest := sha256.Sum256([]byte(username))
	return hex.EncodeToString(digest[:])
}
