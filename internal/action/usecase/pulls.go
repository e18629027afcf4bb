package usecase

import (
	"context"
	"fmt"
	"strings"

	"github-agent/internal/action"
	"github-agent/internal/session"
	"github-agent/pkg/github"
)

var (
	validPRStates     = map[string]bool{"open": true, "closed": true, "all": true}
	validMergeMethods = map[string]bool{"merge": true, "squash": true, "rebase": true}
	reviewEvents      = []string{"APPROVE", "REQUEST_CHANGES", "COMMENT"}
)

func errInvalidNumber() error {
	return fmt.Errorf("pull request number must be a positive integer")
}

// ListPullRequests lists pull requests, newest first. Unknown states fall
// back to open.
func (uc *implUseCase) ListPullRequests(ctx context.Context, sc *session.Context, repoName, state string) string {
	start := uc.now()
	state = strings.ToLower(strings.TrimSpace(state))
	if !validPRStates[state] {
		state = action.DefaultPRState
	}

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameListPullRequests, start, map[string]any{"repo_name": repoName, "state": state}, err)
	}
	full := ref.fullName()
	input := map[string]any{"repo_name": full, "state": state}

	prs, err := uc.gh.ListPullRequests(ctx, sc.Credential.Token(), ref.owner, ref.repo, github.ListPullRequestsOptions{
		State:     state,
		Sort:      "created",
		Direction: "desc",
		PerPage:   pullRequestPageSize,
	})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "listing pull requests",
			notFound:  fmt.Sprintf("Error: Repository '%s' not found.", full),
			forbidden: fmt.Sprintf("Error: You don't have permission to access '%s'.", full),
		})
		return uc.record(ctx, sc, action.NameListPullRequests, start, input, out, outcome, session.OutputCap)
	}

	if len(prs) == 0 {
		return uc.record(ctx, sc, action.NameListPullRequests, start, input, fmt.Sprintf("No %s pull requests found in '%s'.", state, full), outcomeSuccess, session.OutputCap)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Pull Requests in %s:\n\n", strings.ToUpper(state[:1])+state[1:], full)
	for _, pr := range prs {
		status := "Open"
		switch {
		case pr.State == "closed" && pr.Merged:
			status = "Merged"
		case pr.State == "closed":
			status = "Closed"
		case pr.Draft:
			status = "Draft"
		}
		fmt.Fprintf(&b, "  #%d [%s] %s\n    By: @%s\n    %s -> %s\n    URL: %s\n\n",
			pr.Number, status, messageOr(pr.Title, "No title"), messageOr(pr.User.Login, "Unknown"),
			messageOr(pr.Head.Ref, "?"), messageOr(pr.Base.Ref, "?"), pr.HTMLURL)
	}
	fmt.Fprintf(&b, "Total: %d pull request(s)", len(prs))

	return uc.record(ctx, sc, action.NameListPullRequests, start, input, b.String(), outcomeSuccess, session.OutputCap)
}

// CreatePullRequest opens a pull request. With HeadRepo set the head becomes
// "owner:branch" for a cross-repository pull request.
func (uc *implUseCase) CreatePullRequest(ctx context.Context, sc *session.Context, in action.CreatePullRequestInput) string {
	start := uc.now()
	base := strings.TrimSpace(in.Base)
	if base == "" {
		base = action.DefaultBaseBranch
	}
	input := map[string]any{"repo_name": in.RepoName, "title": in.Title, "head_branch": in.Head, "base_branch": base}

	ref, err := resolveRepo(sc, in.RepoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameCreatePullRequest, start, input, err)
	}
	full := ref.fullName()
	input["repo_name"] = full

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Head) == "" {
		return uc.invalid(ctx, sc, action.NameCreatePullRequest, start, input, fmt.Errorf("title and head branch are required"))
	}

	head := in.Head
	if hr := strings.TrimSpace(in.HeadRepo); hr != "" {
		headOwner, _, _ := strings.Cut(hr, "/")
		headOwner, _, _ = strings.Cut(headOwner, ":")
		head = headOwner + ":" + in.Head
		input["head_repo"] = hr
	}

	pr, err := uc.gh.CreatePullRequest(ctx, sc.Credential.Token(), ref.owner, ref.repo, github.NewPullRequest{
		Title: in.Title,
		Head:  head,
		Base:  base,
		Body:  in.Body,
		Draft: in.Draft,
	})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "creating pull request",
			notFound:  fmt.Sprintf("Error: Repository '%s' or branch not found. Make sure both '%s' and '%s' exist.", full, head, base),
			forbidden: fmt.Sprintf("Error: You don't have permission to create pull requests in '%s'.", full),
			validation: func(e *github.Error) string {
				switch {
				case e.HasDetail("a pull request already exists"):
					return fmt.Sprintf("Error: A pull request already exists for %s -> %s.", head, base)
				case e.HasDetail("no commits between"):
					return fmt.Sprintf("Error: No commits found between %s and %s. The branches are identical.", base, head)
				}
				return passThrough(e)
			},
		})
		return uc.record(ctx, sc, action.NameCreatePullRequest, start, input, out, outcome, session.OutputCap)
	}

	status := "Open"
	if pr.Draft {
		status = "Draft"
	}
	out := fmt.Sprintf(`Successfully created pull request!
- PR #%d: %s
- Repository: %s
- From: %s -> %s
- Status: %s
- URL: %s

Your pull request is ready for review!`, pr.Number, in.Title, full, head, base, status, pr.HTMLURL)

	return uc.record(ctx, sc, action.NameCreatePullRequest, start, input, out, outcomeSuccess, session.OutputCap)
}

// MergePullRequest merges a pull request. Unknown methods fall back to merge.
func (uc *implUseCase) MergePullRequest(ctx context.Context, sc *session.Context, in action.MergePullRequestInput) string {
	start := uc.now()
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !validMergeMethods[method] {
		method = action.DefaultMergeMethod
	}
	input := map[string]any{"repo_name": in.RepoName, "pull_number": in.Number, "merge_method": method}

	ref, err := resolveRepo(sc, in.RepoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameMergePullRequest, start, input, err)
	}
	full := ref.fullName()
	input["repo_name"] = full
	if in.Number <= 0 {
		return uc.invalid(ctx, sc, action.NameMergePullRequest, start, input, errInvalidNumber())
	}

	res, err := uc.gh.MergePullRequest(ctx, sc.Credential.Token(), ref.owner, ref.repo, in.Number, github.MergeRequest{
		MergeMethod:   method,
		CommitTitle:   in.CommitTitle,
		CommitMessage: in.CommitMessage,
	})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:            "merging pull request",
			notFound:         fmt.Sprintf("Error: Pull request #%d not found in repository '%s'.", in.Number, full),
			forbidden:        fmt.Sprintf("Error: You don't have permission to merge pull requests in '%s'.", full),
			methodNotAllowed: fmt.Sprintf("Error: Pull request #%d is not mergeable. It may have conflicts or required checks are failing.", in.Number),
			conflict:         fmt.Sprintf("Error: Pull request #%d has a merge conflict. Resolve conflicts before merging.", in.Number),
		})
		return uc.record(ctx, sc, action.NameMergePullRequest, start, input, out, outcome, session.OutputCap)
	}

	if !res.Merged {
		out := fmt.Sprintf("Error: Pull request #%d could not be merged. %s", in.Number, res.Message)
		return uc.record(ctx, sc, action.NameMergePullRequest, start, input, out, github.KindUnexpected.String(), session.OutputCap)
	}

	out := fmt.Sprintf(`Successfully merged pull request!
- PR #%d in %s
- Merge method: %s
- Commit SHA: %s
- Message: %s

The pull request has been merged into the base branch.`, in.Number, full, method, shortSHA(res.SHA), res.Message)

	return uc.record(ctx, sc, action.NameMergePullRequest, start, input, out, outcomeSuccess, session.OutputCap)
}

// GetPullRequestDiff renders the metadata and per-file patches of a pull
// request. Its audit record uses the larger diff cap.
func (uc *implUseCase) GetPullRequestDiff(ctx context.Context, sc *session.Context, repoName string, number int) string {
	start := uc.now()
	input := map[string]any{"repo_name": repoName, "pr_number": number}

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameGetPullRequestDiff, start, input, err)
	}
	full := ref.fullName()
	input["repo_name"] = full
	if number <= 0 {
		return uc.invalid(ctx, sc, action.NameGetPullRequestDiff, start, input, errInvalidNumber())
	}

	token := sc.Credential.Token()
	pr, err := uc.gh.GetPullRequest(ctx, token, ref.owner, ref.repo, number)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:    "fetching PR",
			notFound: fmt.Sprintf("Error: Pull request #%d not found in '%s'.", number, full),
		})
		return uc.record(ctx, sc, action.NameGetPullRequestDiff, start, input, out, outcome, session.DiffOutputCap)
	}

	files, err := uc.gh.ListPullRequestFiles(ctx, token, ref.owner, ref.repo, number)
	if err != nil {
		out, outcome := describe(err, failure{doing: "fetching PR files"})
		return uc.record(ctx, sc, action.NameGetPullRequestDiff, start, input, out, outcome, session.DiffOutputCap)
	}

	return uc.record(ctx, sc, action.NameGetPullRequestDiff, start, input, formatDiff(pr, files), outcomeSuccess, session.DiffOutputCap)
}

func formatDiff(pr github.PullRequest, files []github.PullRequestFile) string {
	rule := strings.Repeat("=", 80)
	sep := strings.Repeat("-", 80)

	var b strings.Builder
	fmt.Fprintf(&b, "Pull Request #%d: %s\n", pr.Number, messageOr(pr.Title, "No title"))
	fmt.Fprintf(&b, "Author: @%s\n", messageOr(pr.User.Login, "Unknown"))
	fmt.Fprintf(&b, "Branch: %s -> %s\n", messageOr(pr.Head.Ref, "?"), messageOr(pr.Base.Ref, "?"))
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(messageOr(pr.State, "unknown")))
	fmt.Fprintf(&b, "Description: %s\n", messageOr(pr.Body, "No description provided"))
	fmt.Fprintf(&b, "\n%s\nFiles Changed: %d\n%s\n", rule, len(files), rule)

	var additions, deletions int
	for _, f := range files {
		additions += f.Additions
		deletions += f.Deletions
		fmt.Fprintf(&b, "\n[%s] %s\n   +%d -%d (~%d changes)\n", messageOr(f.Status, "modified"), f.Filename, f.Additions, f.Deletions, f.Changes)
		if f.Patch != "" {
			fmt.Fprintf(&b, "\nDiff:\n```diff\n%s\n```\n", f.Patch)
		} else {
			b.WriteString("   (Binary file or no diff available)\n")
		}
		fmt.Fprintf(&b, "\n%s\n", sep)
	}
	fmt.Fprintf(&b, "\n\nTotal Changes: +%d -%d", additions, deletions)
	return b.String()
}

// ReviewPullRequest submits a review. REQUEST_CHANGES requires a body.
func (uc *implUseCase) ReviewPullRequest(ctx context.Context, sc *session.Context, in action.ReviewPullRequestInput) string {
	start := uc.now()
	event := strings.ToUpper(strings.TrimSpace(in.Event))
	input := map[string]any{"repo_name": in.RepoName, "pr_number": in.Number, "event": event, "body": in.Body}

	ref, err := resolveRepo(sc, in.RepoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameReviewPullRequest, start, input, err)
	}
	full := ref.fullName()
	input["repo_name"] = full

	valid := false
	for _, e := range reviewEvents {
		if e == event {
			valid = true
			break
		}
	}
	if !valid {
		return uc.invalid(ctx, sc, action.NameReviewPullRequest, start, input,
			fmt.Errorf("invalid review event '%s'. Must be one of: %s", in.Event, strings.Join(reviewEvents, ", ")))
	}
	if event == "REQUEST_CHANGES" && strings.TrimSpace(in.Body) == "" {
		return uc.invalid(ctx, sc, action.NameReviewPullRequest, start, input, fmt.Errorf("review body is required when requesting changes"))
	}
	if in.Number <= 0 {
		return uc.invalid(ctx, sc, action.NameReviewPullRequest, start, input, errInvalidNumber())
	}

	rv, err := uc.gh.CreateReview(ctx, sc.Credential.Token(), ref.owner, ref.repo, in.Number, github.ReviewRequest{Event: event, Body: in.Body})
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "submitting review",
			notFound:  fmt.Sprintf("Error: Pull request #%d not found in '%s'.", in.Number, full),
			forbidden: "Error: You don't have permission to review this PR.",
			validation: func(e *github.Error) string {
				return fmt.Sprintf("Error: %s. You may have already reviewed this PR or you're the PR author.", messageOr(e.Message, "Validation failed"))
			},
		})
		return uc.record(ctx, sc, action.NameReviewPullRequest, start, input, out, outcome, session.OutputCap)
	}

	verb := map[string]string{
		"APPROVE":         "Approved",
		"REQUEST_CHANGES": "Requested changes on",
		"COMMENT":         "Commented on",
	}[event]
	out := fmt.Sprintf("%s PR #%d in '%s'\nReview ID: %d", verb, in.Number, full, rv.ID)
	if in.Body != "" {
		out += "\nFeedback: " + in.Body
	}

	return uc.record(ctx, sc, action.NameReviewPullRequest, start, input, out, outcomeSuccess, session.OutputCap)
}
