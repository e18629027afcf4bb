package tools

import (
	"context"

	"github-agent/internal/action"
	"github-agent/internal/agent"
	"github-agent/internal/session"
)

func NewListRepoFilesTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameListRepoFiles,
		description: "List files and directories at a path of a repository. When repositories are cached, the name is checked against the cache first.",
		parameters: object([]string{"repo_name"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
			"path":      str("Directory inside the repository (default: root)"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.ListRepoFiles(ctx, sc, a.text("repo_name"), a.text("path"))
		},
	}
}

func NewGetFileContentTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name: action.NameGetFileContent,
		description: "Fetch the content of a file. If the path does not exist and the repository is cached, " +
			"the result lists every known file path: pick the closest match and call this tool again.",
		parameters: object([]string{"repo_name", "file_path"}, map[string]interface{}{
			"repo_name": str(repoNameHelp),
			"file_path": str("Path of the file inside the repository"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.GetFileContent(ctx, sc, a.text("repo_name"), a.text("file_path"))
		},
	}
}

func NewCacheRepoStructureTool(uc action.UseCase) agent.Tool {
	return &actionTool{
		name:        action.NameCacheRepoStructure,
		description: "Cache the full file tree of one repository, or of every repository of the user when repo_name is omitted.",
		parameters: object(nil, map[string]interface{}{
			"repo_name": str("Optional repository as 'owner/repo' or 'repo'; omit to cache all repositories"),
		}),
		run: func(ctx context.Context, sc *session.Context, a args) interface{} {
			return uc.CacheRepoStructure(ctx, sc, a.text("repo_name"))
		},
	}
}
