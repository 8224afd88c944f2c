// Package ghclient implements the remote statistics capability against
// the GitHub REST API.
package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gitglance/gitglance/internal/contract"
	"github.com/gitglance/gitglance/schema"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// pageSize is the maximum page size the API allows.
const pageSize = 100

// statusEmptyRepository is returned when listing commits of a
// repository that has no history yet.
const statusEmptyRepository = http.StatusConflict

// Client talks to the GitHub REST API. It implements contract.StatsSource.
type Client struct {
	httpClient  *http.Client
	base        string
	token       string
	affiliation string
}

var _ contract.StatsSource = &Client{} // Compile-time check

// New returns a client authenticated with the given token. An empty
// baseURL selects the public API endpoint; an empty affiliation selects
// the default owner/collaborator/organization filter.
func New(token, baseURL, affiliation string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if affiliation == "" {
		affiliation = contract.DefaultAffiliation
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		base:        baseURL,
		token:       token,
		affiliation: affiliation,
	}
}

// --- Response shapes (only the fields we read) ---

type userResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

type emailResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type repoResponse struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Stargazers int `json:"stargazers_count"`
}

type branchResponse struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Email string `json:"email"`
		} `json:"author"`
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
	Author *struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
	} `json:"author"`
	Stats *struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
}

// AuthenticatedUser implements the StatsSource interface.
func (c *Client) AuthenticatedUser(ctx context.Context) (schema.User, error) {
	var user userResponse
	if err := c.get(ctx, "/user", nil, &user); err != nil {
		return schema.User{}, fmt.Errorf("cannot resolve authenticated user: %w", err)
	}
	return schema.User{ID: user.ID, Login: user.Login}, nil
}

// VerifiedEmails implements the StatsSource interface.
func (c *Client) VerifiedEmails(ctx context.Context) ([]string, error) {
	var all []string
	for page := 1; ; page++ {
		var batch []emailResponse
		if err := c.get(ctx, "/user/emails", pageQuery(page, nil), &batch); err != nil {
			return nil, fmt.Errorf("cannot fetch verified emails: %w", err)
		}
		for _, e := range batch {
			if e.Verified {
				all = append(all, strings.ToLower(e.Email))
			}
		}
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

// OwnedRepositories implements the StatsSource interface.
func (c *Client) OwnedRepositories(ctx context.Context) ([]schema.Repository, error) {
	return c.listRepos(ctx, url.Values{"type": {"owner"}})
}

// AffiliatedRepositories implements the StatsSource interface.
func (c *Client) AffiliatedRepositories(ctx context.Context) ([]schema.Repository, error) {
	return c.listRepos(ctx, url.Values{"affiliation": {c.affiliation}})
}

func (c *Client) listRepos(ctx context.Context, filter url.Values) ([]schema.Repository, error) {
	var all []schema.Repository
	for page := 1; ; page++ {
		var batch []repoResponse
		if err := c.get(ctx, "/user/repos", pageQuery(page, filter), &batch); err != nil {
			return nil, fmt.Errorf("cannot list repositories: %w", err)
		}
		for _, r := range batch {
			all = append(all, schema.Repository{
				Owner:      r.Owner.Login,
				Name:       r.Name,
				Stargazers: r.Stargazers,
			})
		}
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

// Branches implements the StatsSource interface.
func (c *Client) Branches(ctx context.Context, repo schema.Repository) ([]schema.Branch, error) {
	path := fmt.Sprintf("/repos/%s/%s/branches", repo.Owner, repo.Name)

	var all []schema.Branch
	for page := 1; ; page++ {
		var batch []branchResponse
		if err := c.get(ctx, path, pageQuery(page, nil), &batch); err != nil {
			return nil, fmt.Errorf("cannot list branches of %s: %w", repo.FullName(), err)
		}
		for _, b := range batch {
			all = append(all, schema.Branch{Name: b.Name, HeadSHA: b.Commit.SHA})
		}
		if len(batch) < pageSize {
			return all, nil
		}
	}
}

// Commits implements the StatsSource interface.
func (c *Client) Commits(repo schema.Repository, branch string, since time.Time) contract.CommitPager {
	return &commitPager{client: c, repo: repo, branch: branch, since: since, page: 1}
}

// commitPager pages through a branch's history newest-first. Line
// stats are not part of the list response, so each commit costs one
// extra detail request; the caller's head short-circuit exists to keep
// these walks rare.
type commitPager struct {
	client *Client
	repo   schema.Repository
	branch string
	since  time.Time
	page   int
	done   bool
}

var _ contract.CommitPager = &commitPager{} // Compile-time check

// Next implements the CommitPager interface.
func (p *commitPager) Next(ctx context.Context) ([]schema.Commit, bool, error) {
	if p.done {
		return nil, false, nil
	}

	query := pageQuery(p.page, url.Values{"sha": {p.branch}})
	if !p.since.IsZero() {
		query.Set("since", p.since.UTC().Format(time.RFC3339))
	}

	path := fmt.Sprintf("/repos/%s/%s/commits", p.repo.Owner, p.repo.Name)
	var batch []commitResponse
	if err := p.client.get(ctx, path, query, &batch); err != nil {
		return nil, false, fmt.Errorf("cannot walk history of %s@%s: %w", p.repo.FullName(), p.branch, err)
	}

	commits := make([]schema.Commit, 0, len(batch))
	for _, raw := range batch {
		commit, err := p.client.resolveCommit(ctx, p.repo, raw)
		if err != nil {
			return nil, false, err
		}
		commits = append(commits, commit)
	}

	p.page++
	if len(batch) < pageSize {
		p.done = true
	}
	return commits, !p.done, nil
}

// resolveCommit converts a list entry to a schema.Commit, fetching the
// commit detail when the list response omitted line stats.
func (c *Client) resolveCommit(ctx context.Context, repo schema.Repository, raw commitResponse) (schema.Commit, error) {
	if raw.Stats == nil {
		path := fmt.Sprintf("/repos/%s/%s/commits/%s", repo.Owner, repo.Name, raw.SHA)
		var detail commitResponse
		if err := c.get(ctx, path, nil, &detail); err != nil {
			return schema.Commit{}, fmt.Errorf("cannot fetch stats of %s: %w", raw.SHA, err)
		}
		detail.SHA = raw.SHA
		raw = detail
	}

	commit := schema.Commit{
		SHA:         raw.SHA,
		AuthorEmail: raw.Commit.Author.Email,
		CommittedAt: raw.Commit.Committer.Date,
	}
	if raw.Author != nil {
		commit.AuthorID = raw.Author.ID
		commit.AuthorLogin = raw.Author.Login
	}
	if raw.Stats != nil {
		commit.Additions = raw.Stats.Additions
		commit.Deletions = raw.Stats.Deletions
	}
	return commit, nil
}

// pageQuery builds the pagination query, merging extra filters.
func pageQuery(page int, extra url.Values) url.Values {
	q := url.Values{
		"per_page": {strconv.Itoa(pageSize)},
		"page":     {strconv.Itoa(page)},
	}
	for key, vals := range extra {
		q[key] = vals
	}
	return q
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == statusEmptyRepository:
		return contract.ErrEmptyRepository
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return fmt.Errorf("rate limit exceeded, resets at %s", rateLimitReset(resp))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, body)
	}
}

// rateLimitReset formats the X-RateLimit-Reset header for error output.
func rateLimitReset(resp *http.Response) string {
	epoch, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return "unknown time"
	}
	return time.Unix(epoch, 0).UTC().Format(time.RFC3339)
}
