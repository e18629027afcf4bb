package tools

import (
	"context"

	"github-agent/internal/action"
	"github-agent/internal/agent"
	"github-agent/internal/session"
)

func NewGetUserInfoTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameGetUserInfo,
		description: "Get the authenticated user's GitHub username, name, id and the current session.",
		parameters:  object(nil, map[string]interface{}{}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.GetUserInfo(ctx, sc)
		},
	}
}

func NewListReposTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameListRepos,
		description: "List the repositories of the authenticated user, most recently updated first.",
		parameters:  object(nil, map[string]interface{}{}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ListRepos(ctx, sc)
		},
	}
}

func NewCreateRepoTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameCreateRepo,
		description: "Create a new repository for the authenticated user.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name":   str("Name of the new repository"),
			"description": str("Optional repository description"),
			"is_private":  boolean("Create the repository as private (default false)"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.CreateRepo(ctx, sc, action.CreateRepoInput{
				Name:        a.text("repo_name"),
				Description: a.text("description"),
				Private:     a.flag("is_private"),
			})
		},
	}
}

func NewForkRepoTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameForkRepo,
		description: "Fork a repository into the authenticated user's account.",
		parameters: object([]string{"repo_url"}, map[string]interface{}{
			"repo_url": str("Repository URL such as 'https://github.com/owner/repo', or 'owner/repo'"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ForkRepo(ctx, sc, a.text("repo_url"))
		},
	}
}

func NewDeleteRepoTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameDeleteRepo,
		description: "Permanently delete a repository. Only call this after the user explicitly confirmed the deletion.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.DeleteRepo(ctx, sc, a.text("repo_name"))
		},
	}
}

func NewGetRepoInfoTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameGetRepoInfo,
		description: "Get repository details: whether it is a fork, its default branch, and its parent and source repositories.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.GetRepoInfo(ctx, sc, a.text("repo_name"))
		},
	}
}
