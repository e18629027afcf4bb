package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github-agent/internal/session"
	"github-agent/pkg/github"
)

var (
	errEmptyRepoName   = errors.New("repository name is required")
	errInvalidRepoName = errors.New("invalid repository name format, use 'owner/repo' or just 'repo'")
)

// repoRef is a resolved owner/repo pair.
type repoRef struct {
	owner string
	repo  string
}

func (r repoRef) fullName() string {
	return r.owner + "/" + r.repo
}

// resolveRepo accepts "owner/repo" or a bare "repo" owned by the session user.
func resolveRepo(sc *session.Context, name string) (repoRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repoRef{}, errEmptyRepoName
	}
	owner, repo, ok := strings.Cut(name, "/")
	if !ok {
		return repoRef{owner: sc.Identity.Login, repo: name}, nil
	}
	if owner == "" || repo == "" {
		return repoRef{}, errInvalidRepoName
	}
	return repoRef{owner: owner, repo: repo}, nil
}

// failure holds the action-specific wording for remote failures. Empty
// fields fall back to the generic message of the error kind.
type failure struct {
	doing            string
	notFound         string
	forbidden        string
	validation       func(*github.Error) string
	methodNotAllowed string
	conflict         string
}

// describe converts a remote error into the message returned to the agent and
// the outcome label used for metrics.
func describe(err error, f failure) (string, string) {
	ghErr, ok := github.AsError(err)
	if !ok {
		return fmt.Sprintf("Unexpected error while %s: %v", f.doing, err), github.KindUnexpected.String()
	}

	outcome := ghErr.Kind.String()
	switch ghErr.Kind {
	case github.KindConnectivity:
		return fmt.Sprintf("Error connecting to GitHub API: %v", ghErr.Err), outcome
	case github.KindUnauthorized:
		return msgAuthFailed, outcome
	case github.KindRateLimited:
		return msgRateLimit, outcome
	case github.KindForbidden:
		if f.forbidden != "" {
			return f.forbidden, outcome
		}
	case github.KindNotFound:
		if f.notFound != "" {
			return f.notFound, outcome
		}
	case github.KindValidation:
		if f.validation != nil {
			return f.validation(ghErr), outcome
		}
		return passThrough(ghErr), outcome
	case github.KindMethodNotAllowed:
		if f.methodNotAllowed != "" {
			return f.methodNotAllowed, outcome
		}
	case github.KindConflict:
		if f.conflict != "" {
			return f.conflict, outcome
		}
	}
	return fmt.Sprintf("Error %s: %s (Status: %d)", f.doing, messageOr(ghErr.Message, "Unknown error"), ghErr.StatusCode), outcome
}

// passThrough renders a validation failure with the remote's own words.
func passThrough(e *github.Error) string {
	msg := messageOr(e.Message, "Validation failed")
	if details := e.DetailMessages(); details != "" {
		return fmt.Sprintf("Error: %s. %s", msg, details)
	}
	return fmt.Sprintf("Error: %s.", msg)
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// record appends the single audit record of an action and observes its
// outcome. It returns output unchanged for the caller to hand to the agent.
func (uc *implUseCase) record(ctx context.Context, sc *session.Context, name string, start time.Time, input map[string]any, output, outcome string, limit int) string {
	if input == nil {
		input = map[string]any{}
	}
	sc.Trail().Append(name, input, output, limit)
	uc.metrics.observe(name, outcome, uc.now().Sub(start))
	if outcome != outcomeSuccess {
		uc.l.Warnf(ctx, "action.%s: user=%s outcome=%s", name, sc.Identity.Login, outcome)
	} else {
		uc.l.Debugf(ctx, "action.%s: user=%s ok", name, sc.Identity.Login)
	}
	return output
}

func (uc *implUseCase) invalid(ctx context.Context, sc *session.Context, name string, start time.Time, input map[string]any, err error) string {
	return uc.record(ctx, sc, name, start, input, "Error: "+upperFirst(err.Error())+".", outcomeInvalid, session.OutputCap)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
