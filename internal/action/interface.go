package action

import (
	"context"

	"github-agent/internal/session"
)

// UseCase is the set of remote actions the agent can take on behalf of the
// session user. Every method appends exactly one record to the session trail
// and reports remote failures as text rather than as an error.
type UseCase interface {
	GetUserInfo(ctx context.Context, sc *session.Context) string
	ListRepos(ctx context.Context, sc *session.Context) string
	CreateRepo(ctx context.Context, sc *session.Context, input CreateRepoInput) string
	ForkRepo(ctx context.Context, sc *session.Context, repoURL string) string
	DeleteRepo(ctx context.Context, sc *session.Context, repoName string) string
	GetRepoInfo(ctx context.Context, sc *session.Context, repoName string) RepoInfo

	ListRepoFiles(ctx context.Context, sc *session.Context, repoName, path string) string
	GetFileContent(ctx context.Context, sc *session.Context, repoName, filePath string) string
	CacheRepoStructure(ctx context.Context, sc *session.Context, repoName string) string

	ListBranches(ctx context.Context, sc *session.Context, repoName string) string
	CreateBranch(ctx context.Context, sc *session.Context, input CreateBranchInput) string

	ListPullRequests(ctx context.Context, sc *session.Context, repoName, state string) string
	CreatePullRequest(ctx context.Context, sc *session.Context, input CreatePullRequestInput) string
	MergePullRequest(ctx context.Context, sc *session.Context, input MergePullRequestInput) string
	GetPullRequestDiff(ctx context.Context, sc *session.Context, repoName string, number int) string
	ReviewPullRequest(ctx context.Context, sc *session.Context, input ReviewPullRequestInput) string
}
