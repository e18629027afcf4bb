package github

import "time"

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultAPIVersion is sent as X-GitHub-Api-Version on every call.
	DefaultAPIVersion = "2022-11-28"

	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the per_page value used for list endpoints.
	DefaultPageSize = 100

	mediaTypeJSON = "application/vnd.github+json"
)

const (
	headerAPIVersion         = "X-GitHub-Api-Version"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
)
