package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func pullPath(owner, repo string, number int) string {
	return fmt.Sprintf("%s/pulls/%d", repoPath(owner, repo), number)
}

// ListPullRequests lists pull requests of owner/repo.
func (c *Client) ListPullRequests(ctx context.Context, token, owner, repo string, opt ListPullRequestsOptions) ([]PullRequest, error) {
	q := url.Values{}
	if opt.State != "" {
		q.Set("state", opt.State)
	}
	if opt.Sort != "" {
		q.Set("sort", opt.Sort)
	}
	if opt.Direction != "" {
		q.Set("direction", opt.Direction)
	}
	q.Set("per_page", pageSize(opt.PerPage))

	var prs []PullRequest
	_, err := c.do(ctx, token, http.MethodGet, repoPath(owner, repo)+"/pulls", q, nil, &prs)
	return prs, err
}

// GetPullRequest fetches a single pull request.
func (c *Client) GetPullRequest(ctx context.Context, token, owner, repo string, number int) (PullRequest, error) {
	var pr PullRequest
	_, err := c.do(ctx, token, http.MethodGet, pullPath(owner, repo, number), nil, nil, &pr)
	return pr, err
}

// ListPullRequestFiles lists the first page of changed files.
func (c *Client) ListPullRequestFiles(ctx context.Context, token, owner, repo string, number int) ([]PullRequestFile, error) {
	q := url.Values{}
	q.Set("per_page", pageSize(0))

	var files []PullRequestFile
	_, err := c.do(ctx, token, http.MethodGet, pullPath(owner, repo, number)+"/files", q, nil, &files)
	return files, err
}

// CreatePullRequest opens a pull request.
func (c *Client) CreatePullRequest(ctx context.Context, token, owner, repo string, req NewPullRequest) (PullRequest, error) {
	var pr PullRequest
	_, err := c.do(ctx, token, http.MethodPost, repoPath(owner, repo)+"/pulls", nil, req, &pr)
	return pr, err
}

// MergePullRequest merges a pull request.
func (c *Client) MergePullRequest(ctx context.Context, token, owner, repo string, number int, req MergeRequest) (MergeResult, error) {
	var res MergeResult
	_, err := c.do(ctx, token, http.MethodPut, pullPath(owner, repo, number)+"/merge", nil, req, &res)
	return res, err
}

// CreateReview submits a review on a pull request.
func (c *Client) CreateReview(ctx context.Context, token, owner, repo string, number int, req ReviewRequest) (Review, error) {
	var rv Review
	_, err := c.do(ctx, token, http.MethodPost, pullPath(owner, repo, number)+"/reviews", nil, req, &rv)
	return rv, err
}
