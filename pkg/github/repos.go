package github

import (
	"context"
	"net/http"
	"net/url"
)

// ListUserRepos lists repositories visible to the authenticated user. Only the
// first page is fetched.
func (c *Client) ListUserRepos(ctx context.Context, token string, opt ListReposOptions) ([]Repository, error) {
	q := url.Values{}
	if opt.Type == "" {
		opt.Type = "all"
	}
	q.Set("type", opt.Type)
	if opt.Sort != "" {
		q.Set("sort", opt.Sort)
	}
	q.Set("per_page", pageSize(opt.PerPage))

	var repos []Repository
	_, err := c.do(ctx, token, http.MethodGet, "/user/repos", q, nil, &repos)
	return repos, err
}

// GetRepo fetches a single repository, including parent/source for forks.
func (c *Client) GetRepo(ctx context.Context, token, owner, repo string) (Repository, error) {
	var r Repository
	_, err := c.do(ctx, token, http.MethodGet, repoPath(owner, repo), nil, nil, &r)
	return r, err
}

// CreateRepo creates a repository for the authenticated user.
func (c *Client) CreateRepo(ctx context.Context, token string, req CreateRepoRequest) (Repository, error) {
	var r Repository
	_, err := c.do(ctx, token, http.MethodPost, "/user/repos", nil, req, &r)
	return r, err
}

// ForkRepo forks owner/repo into the authenticated user's account. GitHub
// answers 202 and finishes the fork asynchronously.
func (c *Client) ForkRepo(ctx context.Context, token, owner, repo string) (Repository, error) {
	var r Repository
	_, err := c.do(ctx, token, http.MethodPost, repoPath(owner, repo)+"/forks", nil, nil, &r)
	return r, err
}

// DeleteRepo permanently deletes owner/repo.
func (c *Client) DeleteRepo(ctx context.Context, token, owner, repo string) error {
	_, err := c.do(ctx, token, http.MethodDelete, repoPath(owner, repo), nil, nil, nil)
	return err
}
