package tools

import (
	"context"

	"github-agent/internal/action"
	"github-agent/internal/agent"
	"github-agent/internal/session"
)

func NewListPullRequestsTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameListPullRequests,
		description: "List pull requests of a repository, newest first.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
			"state":     enum("Pull request state (default: open)", "open", "closed", "all"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ListPullRequests(ctx, sc, a.text("repo_name"), a.text("state"))
		},
	}
}

func NewCreatePullRequestTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name: action.NameCreatePullRequest,
		description: "Open a pull request. For a pull request from a fork to its parent, set repo_name to the parent " +
			"and head_repo to the fork.",
		parameters: object([]string{"repo_name", "title", "head_branch"}, map[string]interface{}{
			"repo_name":   str("Target repository as 'owner/repo' or 'repo'"),
			"title":       str("Pull request title"),
			"head_branch": str("Branch containing the changes"),
			"base_branch": str("Branch to merge into (default: main)"),
			"description": str("Pull request body"),
			"draft":       boolean("Open as a draft (default false)"),
			"head_repo":   str("Fork holding head_branch, as 'owner/repo', for cross-repository pull requests"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.CreatePullRequest(ctx, sc, action.CreatePullRequestInput{
				RepoName: a.text("repo_name"),
				Title:    a.text("title"),
				Head:     a.text("head_branch"),
				Base:     a.text("base_branch"),
				Body:     a.text("description"),
				Draft:    a.flag("draft"),
				HeadRepo: a.text("head_repo"),
			})
		},
	}
}

func NewMergePullRequestTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameMergePullRequest,
		description: "Merge a pull request.",
		parameters: object([]string{"repo_name", "pull_number"}, map[string]interface{}{
			"repo_name":      str(repoNameHelp),
			"pull_number":    integer("Pull request number"),
			"merge_method":   enum("Merge method (default: merge)", "merge", "squash", "rebase"),
			"commit_title":   str("Optional merge commit title"),
			"commit_message": str("Optional merge commit message"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.MergePullRequest(ctx, sc, action.MergePullRequestInput{
				RepoName:      a.text("repo_name"),
				Number:        a.number("pull_number"),
				Method:        a.text("merge_method"),
				CommitTitle:   a.text("commit_title"),
				CommitMessage: a.text("commit_message"),
			})
		},
	}
}

func NewGetPullRequestDiffTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameGetPullRequestDiff,
		description: "Get a pull request's details together with every changed file and its patch.",
		parameters: object([]string{"repo_name", "pr_number"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
			"pr_number": integer("Pull request number"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.GetPullRequestDiff(ctx, sc, a.text("repo_name"), a.number("pr_number"))
		},
	}
}

func NewReviewPullRequestTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameReviewPullRequest,
		description: "Submit a review on a pull request. REQUEST_CHANGES requires a body.",
		parameters: object([]string{"repo_name", "pr_number", "event"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
			"pr_number": integer("Pull request number"),
			"event":     enum("Review decision", "APPROVE", "REQUEST_CHANGES", "COMMENT"),
			"body":      str("Review feedback"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ReviewPullRequest(ctx, sc, action.ReviewPullRequestInput{
				RepoName: a.text("repo_name"),
				Number:   a.number("pr_number"),
				Event:    a.text("event"),
				Body:     a.text("body"),
			})
		},
	}
}
