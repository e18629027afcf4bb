package action

// Action names as recorded in the audit trail and exposed to the agent.
const (
	NameGetUserInfo        = "get_user_info"
	NameListRepos          = "list_repos"
	NameCreateRepo         = "create_repo"
	NameForkRepo           = "fork_repo"
	NameDeleteRepo         = "delete_repo"
	NameGetRepoInfo        = "get_repo_info"
	NameListRepoFiles      = "list_repo_files"
	NameGetFileContent     = "get_file_content"
	NameCacheRepoStructure = "cache_repo_structure"
	NameListBranches       = "list_branches"
	NameCreateBranch       = "create_branch"
	NameListPullRequests   = "list_pull_requests"
	NameCreatePullRequest  = "create_pull_request"
	NameMergePullRequest   = "merge_pull_request"
	NameGetPullRequestDiff = "get_pr_diff"
	NameReviewPullRequest  = "review_pull_request"
)

const (
	DefaultBaseBranch  = "main"
	DefaultMergeMethod = "merge"
	DefaultPRState     = "open"
)

// CreateRepoInput is the input of CreateRepo.
type CreateRepoInput struct {
	Name        string
	Description string
	Private     bool
}

// CreateBranchInput is the input of CreateBranch. From defaults to main.
type CreateBranchInput struct {
	RepoName string
	Branch   string
	From     string
}

// CreatePullRequestInput is the input of CreatePullRequest. HeadRepo, when
// set, turns the request into a cross-repository pull request.
type CreatePullRequestInput struct {
	RepoName string
	Title    string
	Head     string
	Base     string
	Body     string
	Draft    bool
	HeadRepo string
}

// MergePullRequestInput is the input of MergePullRequest.
type MergePullRequestInput struct {
	RepoName      string
	Number        int
	Method        string
	CommitTitle   string
	CommitMessage string
}

// ReviewPullRequestInput is the input of ReviewPullRequest.
type ReviewPullRequestInput struct {
	RepoName string
	Number   int
	Event    string
	Body     string
}

// RepoRef identifies a repository related to another one.
type RepoRef struct {
	FullName string `json:"full_name"`
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
}

// RepoInfo is the structured result of GetRepoInfo. Error is set instead of
// the other fields when the lookup failed.
type RepoInfo struct {
	FullName      string   `json:"full_name,omitempty"`
	IsFork        bool     `json:"is_fork"`
	DefaultBranch string   `json:"default_branch,omitempty"`
	Parent        *RepoRef `json:"parent"`
	Source        *RepoRef `json:"source"`
	Error         string   `json:"error,omitempty"`
}
