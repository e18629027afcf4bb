package usecase

import "time"

const (
	// DefaultCacheTimeout bounds each call made while caching a tree.
	DefaultCacheTimeout = 120 * time.Second

	// maxFileChars bounds the decoded file content handed to the agent.
	maxFileChars = 10000

	// pullRequestPageSize is the per_page used when listing pull requests.
	pullRequestPageSize = 50

	outcomeSuccess = "success"
	outcomeInvalid = "invalid_input"

	msgAuthFailed = "Error: Authentication failed. Please check your access token."
	msgRateLimit  = "Error: GitHub API rate limit exceeded. Please wait a few minutes and try again."
)
