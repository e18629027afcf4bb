package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github-agent/internal/action"
	"github-agent/internal/session"
	"github-agent/pkg/github"
)

// GetUserInfo reports the session identity without calling the remote.
func (uc *implUseCase) GetUserInfo(ctx context.Context, sc *session.Context) string {
	start := uc.now()
	input := map[string]any{"requested_by": sc.Identity.Login}

	name := sc.Identity.Name
	if name == "" {
		name = "Not provided"
	}
	sessionID := sc.SessionID
	if sessionID == "" {
		sessionID = "None"
	}

	out := fmt.Sprintf(`User Information:
- GitHub Username: %s
- GitHub Name: %s
- GitHub ID: %d
- Session ID: %s
- Request Timestamp: %s`, sc.Identity.Login, name, sc.Identity.ID, sessionID, sc.Timestamp)

	return uc.record(ctx, sc, action.NameGetUserInfo, start, input, out, outcomeSuccess, session.OutputCap)
}

// ListRepos lists the repositories visible to the session user.
func (uc *implUseCase) ListRepos(ctx context.Context, sc *session.Context) string {
	start := uc.now()
	login := sc.Identity.Login

	repos, err := uc.gh.ListUserRepos(ctx, sc.Credential.Token(), github.ListReposOptions{Type: "all", Sort: "updated"})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "fetching repositories",
			notFound:  fmt.Sprintf("Error: User '%s' not found on GitHub", login),
			forbidden: "Error: Insufficient permissions to list repositories.",
		})
		return uc.record(ctx, sc, action.NameListRepos, start, nil, out, outcome, session.OutputCap)
	}

	if len(repos) == 0 {
		out := fmt.Sprintf("No repositories found for user '%s'", login)
		return uc.record(ctx, sc, action.NameListRepos, start, nil, out, outcomeSuccess, session.OutputCap)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d repositories for '%s':\n", len(repos), login)
	for i, r := range repos {
		privacy := "Public"
		if r.Private {
			privacy = "Private"
		}
		fmt.Fprintf(&b, "\n%d. %s (%s)\n   Description: %s\n   Language: %s | Stars: %d | Forks: %d\n   URL: %s\n   Last updated: %s\n",
			i+1, r.FullName, privacy,
			messageOr(r.Description, "No description"),
			messageOr(r.Language, "N/A"),
			r.StargazersCount, r.ForksCount, r.HTMLURL, r.UpdatedAt)
	}

	return uc.record(ctx, sc, action.NameListRepos, start, nil, b.String(), outcomeSuccess, session.OutputCap)
}

// CreateRepo creates a repository initialized with a README.
func (uc *implUseCase) CreateRepo(ctx context.Context, sc *session.Context, in action.CreateRepoInput) string {
	start := uc.now()
	input := map[string]any{
		"repo_name":   in.Name,
		"description": in.Description,
		"is_private":  in.Private,
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return uc.invalid(ctx, sc, action.NameCreateRepo, start, input, errEmptyRepoName)
	}

	repo, err := uc.gh.CreateRepo(ctx, sc.Credential.Token(), github.CreateRepoRequest{
		Name:        name,
		Description: in.Description,
		Private:     in.Private,
		AutoInit:    true,
	})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "creating repository",
			forbidden: "Error: You don't have permission to create repositories. This might be due to account limitations.",
			validation: func(e *github.Error) string {
				if e.HasDetail("name already exists on this account") {
					return fmt.Sprintf("Error: A repository named '%s' already exists in your account. Please choose a different name.", name)
				}
				return passThrough(e) + " Please check the repository name and try again."
			},
		})
		return uc.record(ctx, sc, action.NameCreateRepo, start, input, out, outcome, session.OutputCap)
	}

	privacy := "public"
	if in.Private {
		privacy = "private"
	}
	out := fmt.Sprintf(`Successfully created %s repository!
- Repository: %s
- Description: %s
- URL: %s
- Clone (HTTPS): %s
- Clone (SSH): %s
- Initialized with README: Yes`, privacy, repo.FullName, messageOr(in.Description, "No description"), repo.HTMLURL, repo.CloneURL, repo.SSHURL)

	return uc.record(ctx, sc, action.NameCreateRepo, start, input, out, outcomeSuccess, session.OutputCap)
}

// parseForkTarget accepts a repository URL or "owner/repo".
func parseForkTarget(target string) (repoRef, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return repoRef{}, errEmptyRepoName
	}

	var owner, repo string
	if strings.HasPrefix(target, "http") {
		parts := strings.Split(strings.TrimRight(target, "/"), "/")
		if len(parts) < 2 {
			return repoRef{}, fmt.Errorf("invalid repository URL format")
		}
		owner, repo = parts[len(parts)-2], parts[len(parts)-1]
	} else {
		parts := strings.Split(target, "/")
		if len(parts) != 2 {
			return repoRef{}, fmt.Errorf("invalid repository format, use 'owner/repo' or full GitHub URL")
		}
		owner, repo = parts[0], parts[1]
	}

	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		return repoRef{}, errInvalidRepoName
	}
	return repoRef{owner: owner, repo: repo}, nil
}

// ForkRepo forks a repository into the session user's account.
func (uc *implUseCase) ForkRepo(ctx context.Context, sc *session.Context, repoURL string) string {
	start := uc.now()
	input := map[string]any{"repo_url": repoURL}

	ref, err := parseForkTarget(repoURL)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameForkRepo, start, input, err)
	}
	full := ref.fullName()

	fork, err := uc.gh.ForkRepo(ctx, sc.Credential.Token(), ref.owner, ref.repo)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "forking repository " + full,
			forbidden: fmt.Sprintf("Error: You don't have permission to fork %s. The repository might be private or you may have reached the fork limit.", full),
			notFound:  fmt.Sprintf("Error: Repository %s not found. Please check the repository name and try again.", full),
		})
		return uc.record(ctx, sc, action.NameForkRepo, start, input, out, outcome, session.OutputCap)
	}

	out := fmt.Sprintf(`Successfully forked repository!
- Original: %s
- Forked to: %s
- URL: %s
- Status: Fork is being created (this may take a few moments)`, full, fork.FullName, fork.HTMLURL)

	return uc.record(ctx, sc, action.NameForkRepo, start, input, out, outcomeSuccess, session.OutputCap)
}

// DeleteRepo permanently deletes a repository.
func (uc *implUseCase) DeleteRepo(ctx context.Context, sc *session.Context, repoName string) string {
	start := uc.now()
	input := map[string]any{"repo_name": repoName}

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameDeleteRepo, start, input, err)
	}
	full := ref.fullName()

	if err := uc.gh.DeleteRepo(ctx, sc.Credential.Token(), ref.owner, ref.repo); err != nil {
		out, outcome := describe(err, failure{
			doing:     fmt.Sprintf("deleting repository '%s'", full),
			notFound:  fmt.Sprintf("Error: Repository '%s' not found. Please check the repository name and try again.", full),
			forbidden: fmt.Sprintf("Error: You don't have permission to delete '%s'. You must be the owner of the repository to delete it.", full),
		})
		return uc.record(ctx, sc, action.NameDeleteRepo, start, input, out, outcome, session.OutputCap)
	}

	out := fmt.Sprintf(`Successfully deleted repository!
- Repository: %s
- Status: Permanently deleted
- Note: This action cannot be undone`, full)

	return uc.record(ctx, sc, action.NameDeleteRepo, start, input, out, outcomeSuccess, session.OutputCap)
}

// GetRepoInfo returns fork status and parent/source of a repository.
func (uc *implUseCase) GetRepoInfo(ctx context.Context, sc *session.Context, repoName string) action.RepoInfo {
	start := uc.now()
	input := map[string]any{"repo_name": repoName}

	info, outcome := uc.getRepoInfo(ctx, sc, repoName)
	raw, _ := json.Marshal(info)
	uc.record(ctx, sc, action.NameGetRepoInfo, start, input, string(raw), outcome, session.OutputCap)
	return info
}

func (uc *implUseCase) getRepoInfo(ctx context.Context, sc *session.Context, repoName string) (action.RepoInfo, string) {
	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return action.RepoInfo{Error: err.Error()}, outcomeInvalid
	}

	r, err := uc.gh.GetRepo(ctx, sc.Credential.Token(), ref.owner, ref.repo)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:    "fetching repository " + ref.fullName(),
			notFound: "Repository not found: " + ref.fullName(),
		})
		return action.RepoInfo{Error: out}, outcome
	}

	info := action.RepoInfo{
		FullName:      r.FullName,
		IsFork:        r.Fork,
		DefaultBranch: r.DefaultBranch,
	}
	if r.Fork {
		if r.Parent != nil {
			info.Parent = &action.RepoRef{FullName: r.Parent.FullName, Owner: r.Parent.Owner.Login, Name: r.Parent.Name, URL: r.Parent.HTMLURL}
		}
		if r.Source != nil {
			info.Source = &action.RepoRef{FullName: r.Source.FullName, Owner: r.Source.Owner.Login, Name: r.Source.Name}
		}
	}
	return info, outcomeSuccess
}
