package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github-agent/internal/action"
	"github-agent/internal/agent"
	"github-agent/internal/session"
)

// actionTool exposes one remote action to the LLM. Arguments are passed
// through loosely: missing or mistyped values reach the action as zero values
// so the action itself validates and records them.
type actionTool struct {
	name        string
	description string
	parameters  map[string]interface{}
	run         func(ctx context.Context, sc *session.Context, args args) interface{}
}

func (t *actionTool) Name() string                       { return t.name }
func (t *actionTool) Description() string                { return t.description }
func (t *actionTool) Parameters() map[string]interface{} { return t.parameters }

func (t *actionTool) Execute(ctx context.Context, sc *session.Context, params map[string]interface{}) (interface{}, error) {
	if sc == nil {
		return nil, fmt.Errorf("%s: session context is required", t.name)
	}
	return t.run(ctx, sc, args(params)), nil
}

// RegisterAll registers every remote action as a tool.
func RegisterAll(r *agent.ToolRegistry, uc action.UseCase) {
	for _, t := range []agent.Tool{
		NewGetUserInfoTool(uc),
		NewListReposTool(uc),
		NewCreateRepoTool(uc),
		NewForkRepoTool(uc),
		NewDeleteRepoTool(uc),
		NewGetRepoInfoTool(uc),
		NewListRepoFilesTool(uc),
		NewGetFileContentTool(uc),
		NewCacheRepoStructureTool(uc),
		NewListBranchesTool(uc),
		NewCreateBranchTool(uc),
		NewListPullRequestsTool(uc),
		NewCreatePullRequestTool(uc),
		NewMergePullRequestTool(uc),
		NewGetPullRequestDiffTool(uc),
		NewReviewPullRequestTool(uc),
	} {
		r.Register(t)
	}
}

type args map[string]interface{}

func (a args) text(key string) string {
	switch v := a[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (a args) flag(key string) bool {
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// number accepts JSON numbers and numeric strings; anything else is 0.
func (a args) number(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(v), "#"))
		return n
	default:
		return 0
	}
}

// schema builders
func object(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integer(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolean(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

func enum(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

const repoNameHelp = "Repository as 'owner/repo', or just 'repo' for the authenticated user's repository"
