package github

import (
	"context"
	"net/http"
	"net/url"
)

// ListBranches lists the first page of branches.
func (c *Client) ListBranches(ctx context.Context, token, owner, repo string) ([]Branch, error) {
	q := url.Values{}
	q.Set("per_page", pageSize(0))

	var branches []Branch
	_, err := c.do(ctx, token, http.MethodGet, repoPath(owner, repo)+"/branches", q, nil, &branches)
	return branches, err
}

// GetBranchRef resolves refs/heads/{branch}.
func (c *Client) GetBranchRef(ctx context.Context, token, owner, repo, branch string) (Reference, error) {
	var ref Reference
	_, err := c.do(ctx, token, http.MethodGet, repoPath(owner, repo)+"/git/ref/heads/"+escapePath(branch), nil, nil, &ref)
	return ref, err
}

// CreateBranchRef creates refs/heads/{branch} pointing at sha.
func (c *Client) CreateBranchRef(ctx context.Context, token, owner, repo, branch, sha string) (Reference, error) {
	body := map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": sha,
	}
	var ref Reference
	_, err := c.do(ctx, token, http.MethodPost, repoPath(owner, repo)+"/git/refs", nil, body, &ref)
	return ref, err
}
