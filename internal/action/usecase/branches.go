package usecase

import (
	"context"
	"fmt"
	"strings"

	"github-agent/internal/action"
	"github-agent/internal/session"
	"github-agent/pkg/github"
)

// ListBranches lists the branches of a repository.
func (uc *implUseCase) ListBranches(ctx context.Context, sc *session.Context, repoName string) string {
	start := uc.now()

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameListBranches, start, map[string]any{"repo_name": repoName}, err)
	}
	full := ref.fullName()
	input := map[string]any{"repo_name": full}

	branches, err := uc.gh.ListBranches(ctx, sc.Credential.Token(), ref.owner, ref.repo)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "listing branches",
			notFound:  fmt.Sprintf("Error: Repository '%s' not found.", full),
			forbidden: fmt.Sprintf("Error: You don't have permission to access '%s'.", full),
		})
		return uc.record(ctx, sc, action.NameListBranches, start, input, out, outcome, session.OutputCap)
	}

	if len(branches) == 0 {
		return uc.record(ctx, sc, action.NameListBranches, start, input, fmt.Sprintf("No branches found in repository '%s'.", full), outcomeSuccess, session.OutputCap)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Branches in %s:\n\n", full)
	for _, br := range branches {
		fmt.Fprintf(&b, "  - %s (%s)", br.Name, shortSHA(br.Commit.SHA))
		if br.Protected {
			b.WriteString(" [protected]")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal branches: %d", len(branches))

	return uc.record(ctx, sc, action.NameListBranches, start, input, b.String(), outcomeSuccess, session.OutputCap)
}

// CreateBranch creates a branch pointing at the head of another branch.
func (uc *implUseCase) CreateBranch(ctx context.Context, sc *session.Context, in action.CreateBranchInput) string {
	start := uc.now()
	from := strings.TrimSpace(in.From)
	if from == "" {
		from = action.DefaultBaseBranch
	}

	ref, err := resolveRepo(sc, in.RepoName)
	input := map[string]any{"repo_name": in.RepoName, "branch_name": in.Branch, "from_branch": from}
	if err != nil {
		return uc.invalid(ctx, sc, action.NameCreateBranch, start, input, err)
	}
	full := ref.fullName()
	input["repo_name"] = full

	branch := strings.TrimSpace(in.Branch)
	if branch == "" {
		return uc.invalid(ctx, sc, action.NameCreateBranch, start, input, fmt.Errorf("branch name is required"))
	}

	token := sc.Credential.Token()
	source, err := uc.gh.GetBranchRef(ctx, token, ref.owner, ref.repo, from)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:    "resolving source branch",
			notFound: fmt.Sprintf("Error: Source branch '%s' not found in repository '%s'.", from, full),
		})
		return uc.record(ctx, sc, action.NameCreateBranch, start, input, out, outcome, session.OutputCap)
	}
	sha := source.Object.SHA

	if _, err := uc.gh.CreateBranchRef(ctx, token, ref.owner, ref.repo, branch, sha); err != nil {
		out, outcome := describe(err, failure{
			doing:     "creating branch",
			forbidden: fmt.Sprintf("Error: You don't have permission to create branches in '%s'.", full),
			validation: func(e *github.Error) string {
				if strings.Contains(strings.ToLower(e.Message), "reference already exists") || e.HasDetail("reference already exists") {
					return fmt.Sprintf("Error: Branch '%s' already exists in repository '%s'.", branch, full)
				}
				return passThrough(e)
			},
		})
		return uc.record(ctx, sc, action.NameCreateBranch, start, input, out, outcome, session.OutputCap)
	}

	out := fmt.Sprintf(`Successfully created branch!
- Branch: %s
- Repository: %s
- Created from: %s
- SHA: %s
- URL: https://github.com/%s/%s/tree/%s

You can now work on this branch locally:
  git fetch origin
  git checkout %s`, branch, full, from, shortSHA(sha), ref.owner, ref.repo, branch, branch)

	return uc.record(ctx, sc, action.NameCreateBranch, start, input, out, outcomeSuccess, session.OutputCap)
}
