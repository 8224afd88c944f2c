package contract

import (
	"context"
	"time"

	"github.com/gitglance/gitglance/schema"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of StatsSource for testing.
type MockSource struct {
	mock.Mock
}

var _ StatsSource = &MockSource{} // Compile-time check

// AuthenticatedUser implements the StatsSource interface.
func (m *MockSource) AuthenticatedUser(ctx context.Context) (schema.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.User), args.Error(1)
}

// VerifiedEmails implements the StatsSource interface.
func (m *MockSource) VerifiedEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

// OwnedRepositories implements the StatsSource interface.
func (m *MockSource) OwnedRepositories(ctx context.Context) ([]schema.Repository, error) {
	args := m.Called(ctx)
	repos, _ := args.Get(0).([]schema.Repository)
	return repos, args.Error(1)
}

// AffiliatedRepositories implements the StatsSource interface.
func (m *MockSource) AffiliatedRepositories(ctx context.Context) ([]schema.Repository, error) {
	args := m.Called(ctx)
	repos, _ := args.Get(0).([]schema.Repository)
	return repos, args.Error(1)
}

// Branches implements the StatsSource interface.
func (m *MockSource) Branches(ctx context.Context, repo schema.Repository) ([]schema.Branch, error) {
	args := m.Called(ctx, repo)
	branches, _ := args.Get(0).([]schema.Branch)
	return branches, args.Error(1)
}

// Commits implements the StatsSource interface.
func (m *MockSource) Commits(repo schema.Repository, branch string, since time.Time) CommitPager {
	args := m.Called(repo, branch, since)
	pager, _ := args.Get(0).(CommitPager)
	return pager
}

// SlicePager is a CommitPager over pre-built pages, for tests and for
// sources that already hold their history in memory.
type SlicePager struct {
	pages [][]schema.Commit
	next  int
	err   error
}

var _ CommitPager = &SlicePager{} // Compile-time check

// NewSlicePager returns a pager that yields the given pages in order.
func NewSlicePager(pages ...[]schema.Commit) *SlicePager {
	return &SlicePager{pages: pages}
}

// NewFailingPager returns a pager whose first Next call fails with err.
func NewFailingPager(err error) *SlicePager {
	return &SlicePager{err: err}
}

// Next implements the CommitPager interface.
func (p *SlicePager) Next(_ context.Context) ([]schema.Commit, bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}
	if p.next >= len(p.pages) {
		return nil, false, nil
	}
	page := p.pages[p.next]
	p.next++
	return page, p.next < len(p.pages), nil
}
