// Package core has the incremental reconciliation, orchestration and
// aggregation logic for gitglance.
package core

import (
	"strings"

	"github.com/gitglance/gitglance/schema"
)

// IsAuthoredBy reports whether a commit was authored by the tracked
// user. Matching order: platform account id, then verified email
// (case-insensitive), then login as a fallback for commits made before
// the email was linked to the account. Absent author metadata degrades
// to false; this never errors.
func IsAuthoredBy(user schema.User, emails map[string]struct{}, commit schema.Commit) bool {
	if commit.AuthorID != 0 && commit.AuthorID == user.ID {
		return true
	}
	if commit.AuthorEmail != "" {
		if _, ok := emails[strings.ToLower(commit.AuthorEmail)]; ok {
			return true
		}
	}
	if commit.AuthorLogin != "" && commit.AuthorLogin == user.Login {
		return true
	}
	return false
}

// EmailSet normalizes a verified-email list into the lower-cased set
// IsAuthoredBy consumes.
func EmailSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(e)] = struct{}{}
	}
	return set
}
