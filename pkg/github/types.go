package github

import (
	"net/http"
	"time"
)

// Config holds GitHub client configuration.
type Config struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration

	// Transport is the base round tripper under the bearer transport.
	Transport http.RoundTripper
}

// User is the authenticated account returned by GET /user.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	ID    int64  `json:"id"`
}

// Owner is the embedded account object on repositories and pull requests.
type Owner struct {
	Login string `json:"login"`
}

// Repository is the subset of the repository object the agent reports on.
type Repository struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	FullName        string      `json:"full_name"`
	Owner           Owner       `json:"owner"`
	Description     string      `json:"description"`
	Private         bool        `json:"private"`
	Fork            bool        `json:"fork"`
	HTMLURL         string      `json:"html_url"`
	CloneURL        string      `json:"clone_url"`
	SSHURL          string      `json:"ssh_url"`
	Language        string      `json:"language"`
	StargazersCount int         `json:"stargazers_count"`
	ForksCount      int         `json:"forks_count"`
	DefaultBranch   string      `json:"default_branch"`
	UpdatedAt       string      `json:"updated_at"`
	Parent          *Repository `json:"parent,omitempty"`
	Source          *Repository `json:"source,omitempty"`
}

// CreateRepoRequest is the body for POST /user/repos.
type CreateRepoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

// ListReposOptions are the query parameters for GET /user/repos.
type ListReposOptions struct {
	Type    string
	Sort    string
	PerPage int
}

// ContentEntry is one item of the contents API.
type ContentEntry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	SHA         string `json:"sha"`
	DownloadURL string `json:"download_url"`
	Encoding    string `json:"encoding,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Contents is the decoded contents API response. The endpoint returns an
// array for directories and a single object for files.
type Contents struct {
	IsDir   bool
	Entries []ContentEntry
	File    *ContentEntry
}

// Branch is one item of GET /repos/{o}/{r}/branches.
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Commit    struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

// Reference is a git ref.
type Reference struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA  string `json:"sha"`
		Type string `json:"type"`
	} `json:"object"`
}

// PullRequestRef is the head or base of a pull request.
type PullRequestRef struct {
	Ref   string `json:"ref"`
	Label string `json:"label"`
}

// PullRequest is the subset of the pull request object the agent reports on.
type PullRequest struct {
	Number  int            `json:"number"`
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	State   string         `json:"state"`
	Draft   bool           `json:"draft"`
	Merged  bool           `json:"merged"`
	HTMLURL string         `json:"html_url"`
	User    Owner          `json:"user"`
	Head    PullRequestRef `json:"head"`
	Base    PullRequestRef `json:"base"`
}

// NewPullRequest is the body for POST /repos/{o}/{r}/pulls.
type NewPullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body"`
	Draft bool   `json:"draft"`
}

// ListPullRequestsOptions are the query parameters for listing pull requests.
type ListPullRequestsOptions struct {
	State     string
	Sort      string
	Direction string
	PerPage   int
}

// PullRequestFile is one changed file of a pull request.
type PullRequestFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Patch     string `json:"patch"`
}

// MergeRequest is the body for PUT /repos/{o}/{r}/pulls/{n}/merge.
type MergeRequest struct {
	MergeMethod   string `json:"merge_method"`
	CommitTitle   string `json:"commit_title,omitempty"`
	CommitMessage string `json:"commit_message,omitempty"`
}

// MergeResult is the merge endpoint response.
type MergeResult struct {
	SHA     string `json:"sha"`
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
}

// ReviewRequest is the body for POST /repos/{o}/{r}/pulls/{n}/reviews.
type ReviewRequest struct {
	Event string `json:"event"`
	Body  string `json:"body,omitempty"`
}

// Review is a submitted pull request review.
type Review struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
}
