package tools

import (
	"context"

	"github-agent/internal/action"
	"github-agent/internal/agent"
	"github-agent/internal/session"
)

func NewListBranchesTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameListBranches,
		description: "List the branches of a repository.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ListBranches(ctx, sc, a.text("repo_name"))
		},
	}
}

func NewCreateBranchTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameCreateBranch,
		description: "Create a branch from the head of another branch.",
		parameters: object([]string{"repo_name", "branch_name"}, map[string]interface{}{
			"repo_name":   str(repoNameHelp),
			"branch_name": str("Name of the new branch"),
			"from_branch": str("Branch to start from (default: main)"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.CreateBranch(ctx, sc, action.CreateBranchInput{
				RepoName: a.text("repo_name"),
				Branch:   a.text("branch_name"),
				From:     a.text("from_branch"),
			})
		},
	}
}
