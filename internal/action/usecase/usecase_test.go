package usecase_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-agent/internal/action"
	"github-agent/internal/action/usecase"
	"github-agent/internal/session"
	"github-agent/pkg/github"
	pkgLog "github-agent/pkg/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func entry(typ, path string) map[string]any {
	name := path[strings.LastIndex(path, "/")+1:]
	return map[string]any{"type": typ, "name": name, "path": path, "size": 42}
}

// fakeGitHub serves the alice/repo1 tree {README.md, src/, src/main.go}.
func fakeGitHub(t *testing.T) (*http.ServeMux, *int32) {
	t.Helper()
	var calls int32
	mux := http.NewServeMux()
	count := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			h(w, r)
		}
	}

	mux.HandleFunc("/repos/alice/repo1/contents/", count(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/repos/alice/repo1/contents/") {
		case "":
			writeJSON(w, 200, []map[string]any{entry("file", "README.md"), entry("dir", "src")})
		case "src":
			writeJSON(w, 200, []map[string]any{entry("file", "src/main.go")})
		case "src/main.go":
			writeJSON(w, 200, map[string]any{
				"type": "file", "name": "main.go", "path": "src/main.go", "size": 12,
				"encoding": "base64", "content": base64.StdEncoding.EncodeToString([]byte("package main\n")),
			})
		case "logo.png":
			writeJSON(w, 200, map[string]any{
				"type": "file", "name": "logo.png", "path": "logo.png", "size": 4,
				"encoding": "base64", "content": base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x81}),
				"download_url": "https://raw.example/logo.png",
			})
		default:
			writeJSON(w, 404, map[string]any{"message": "Not Found"})
		}
	}))
	mux.HandleFunc("/repos/bob/other/contents/", count(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, map[string]any{"message": "Not Found"})
	}))
	return mux, &calls
}

type fixture struct {
	uc    action.UseCase
	sc    *session.Context
	reg   *prometheus.Registry
	calls *int32
	mux   *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mux, calls := fakeGitHub(t)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	reg := prometheus.NewRegistry()
	gh := github.New(github.Config{BaseURL: ts.URL})
	uc := usecase.New(pkgLog.NewNop(), gh, usecase.NewMetrics(reg), usecase.Config{})
	sc := session.New(session.Identity{Login: "alice", Name: "Alice", ID: 1}, "s1", "ghp_token_value_1234", "2024-05-01T10:00:00Z")
	return &fixture{uc: uc, sc: sc, reg: reg, calls: calls, mux: mux}
}

func TestFileMissFallbackScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.uc.CacheRepoStructure(ctx, f.sc, "alice/repo1")
	assert.Contains(t, out, "- Files: 2")
	assert.Contains(t, out, "- Directories: 1")
	assert.NotContains(t, out, "Incomplete")

	out = f.uc.GetFileContent(ctx, f.sc, "alice/repo1", "src/main.g")
	assert.Contains(t, out, "not found in repository 'alice/repo1'")
	assert.Contains(t, out, "  - README.md\n  - src/main.go\n")
	assert.Less(t, strings.Index(out, "README.md"), strings.Index(out, "src/main.go"))

	recs := f.sc.Trail().Records()
	require.Len(t, recs, 2)
	assert.Equal(t, action.NameCacheRepoStructure, recs[0].ActionName)
	assert.Equal(t, action.NameGetFileContent, recs[1].ActionName)
	assert.Equal(t, "alice/repo1", recs[1].Input["repo_name"])
}

func TestFileMissUncached(t *testing.T) {
	f := newFixture(t)

	out := f.uc.GetFileContent(context.Background(), f.sc, "bob/other", "missing.go")
	assert.Equal(t, "Error: File 'missing.go' not found in repository 'bob/other'.", out)
	assert.Equal(t, 1, f.sc.Trail().Len())
}

func TestGetFileContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		out := f.uc.GetFileContent(ctx, f.sc, "repo1", "src/main.go")
		assert.Contains(t, out, "Repository: alice/repo1")
		assert.Contains(t, out, "--- Content ---\npackage main\n")
	})

	t.Run("binary", func(t *testing.T) {
		out := f.uc.GetFileContent(ctx, f.sc, "alice/repo1", "logo.png")
		assert.Contains(t, out, "Type: Binary file")
		assert.Contains(t, out, "Download URL: https://raw.example/logo.png")
	})

	t.Run("directory", func(t *testing.T) {
		out := f.uc.GetFileContent(ctx, f.sc, "alice/repo1", "src")
		assert.Contains(t, out, "is not a file")
	})
}

func TestListRepoFilesCacheGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.uc.ListRepoFiles(ctx, f.sc, "alice/repo1", "")
	assert.Contains(t, out, "Contents of 'root' in alice/repo1")
	assert.Contains(t, out, "  - src/")
	assert.Contains(t, out, "Total: 1 directories, 1 files")

	f.uc.CacheRepoStructure(ctx, f.sc, "alice/repo1")
	before := atomic.LoadInt32(f.calls)

	out = f.uc.ListRepoFiles(ctx, f.sc, "alice/rep01", "")
	assert.Contains(t, out, "not found in cached repositories")
	assert.Contains(t, out, "1. alice/repo1")
	assert.Equal(t, before, atomic.LoadInt32(f.calls), "guard must not call the remote")
	assert.Equal(t, 3, f.sc.Trail().Len())
}

func TestTrailCapsAcrossActions(t *testing.T) {
	f := newFixture(t)
	longPatch := strings.Repeat("+line of code\n", 500)
	f.mux.HandleFunc("/repos/alice/repo1/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"number": 7, "title": "Big", "state": "open", "user": map[string]any{"login": "bob"}})
	})
	f.mux.HandleFunc("/repos/alice/repo1/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"filename": "a.go", "status": "modified", "additions": 500, "patch": longPatch}})
	})
	f.mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		repos := make([]map[string]any, 30)
		for i := range repos {
			repos[i] = map[string]any{"full_name": "alice/r", "name": "r", "description": strings.Repeat("d", 50)}
		}
		writeJSON(w, 200, repos)
	})

	ctx := context.Background()
	diff := f.uc.GetPullRequestDiff(ctx, f.sc, "alice/repo1", 7)
	assert.Greater(t, utf8.RuneCountInString(diff), session.DiffOutputCap)
	assert.Contains(t, diff, "Total Changes: +500 -0")

	f.uc.ListRepos(ctx, f.sc)
	f.uc.GetUserInfo(ctx, f.sc)
	f.uc.GetFileContent(ctx, f.sc, "alice/repo1", "nope")

	recs := f.sc.Trail().Records()
	require.Len(t, recs, 4)
	wantNames := []string{action.NameGetPullRequestDiff, action.NameListRepos, action.NameGetUserInfo, action.NameGetFileContent}
	for i, rec := range recs {
		assert.Equal(t, wantNames[i], rec.ActionName)
		limit := session.OutputCap
		if rec.ActionName == action.NameGetPullRequestDiff {
			limit = session.DiffOutputCap
		}
		assert.LessOrEqual(t, utf8.RuneCountInString(rec.Output), limit)
	}
	assert.True(t, strings.HasSuffix(recs[0].Output, "..."))
}

func TestValidationStillRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out := f.uc.ReviewPullRequest(ctx, f.sc, action.ReviewPullRequestInput{RepoName: "alice/repo1", Number: 1, Event: "LGTM"})
	assert.Contains(t, out, "Invalid review event 'LGTM'")

	out = f.uc.ReviewPullRequest(ctx, f.sc, action.ReviewPullRequestInput{RepoName: "alice/repo1", Number: 1, Event: "request_changes"})
	assert.Contains(t, out, "Review body is required")

	out = f.uc.DeleteRepo(ctx, f.sc, "  ")
	assert.Contains(t, out, "Repository name is required")

	assert.Equal(t, int32(0), atomic.LoadInt32(f.calls))
	assert.Equal(t, 3, f.sc.Trail().Len())
	assert.Equal(t, float64(2), counterValue(t, f.reg, action.NameReviewPullRequest, "invalid_input"))
	assert.Equal(t, float64(1), counterValue(t, f.reg, action.NameDeleteRepo, "invalid_input"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, outcome string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "github_agent_action_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["action"] == name && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRemoteFailureMessages(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 422, map[string]any{"message": "Repository creation failed.", "errors": []map[string]any{{"resource": "Repository", "code": "custom", "field": "name", "message": "name already exists on this account"}}})
	})
	f.mux.HandleFunc("/repos/alice/repo1/pulls/3/merge", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 405, map[string]any{"message": "Pull Request is not mergeable"})
	})
	f.mux.HandleFunc("/repos/alice/repo1/pulls/4/merge", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 409, map[string]any{"message": "Head branch was modified"})
	})
	f.mux.HandleFunc("/repos/alice/repo1/pulls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 422, map[string]any{"message": "Validation Failed", "errors": []map[string]any{{"resource": "PullRequest", "code": "custom", "message": "A pull request already exists for alice:feat."}}})
	})
	f.mux.HandleFunc("/repos/alice/repo1/branches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		writeJSON(w, 403, map[string]any{"message": "API rate limit exceeded"})
	})
	f.mux.HandleFunc("/repos/alice/gone", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"message": "Bad credentials"})
	})
	ctx := context.Background()

	assert.Equal(t, "Error: A repository named 'repo1' already exists in your account. Please choose a different name.",
		f.uc.CreateRepo(ctx, f.sc, action.CreateRepoInput{Name: "repo1"}))
	assert.Contains(t, f.uc.MergePullRequest(ctx, f.sc, action.MergePullRequestInput{RepoName: "repo1", Number: 3, Method: "bogus"}), "is not mergeable")
	assert.Contains(t, f.uc.MergePullRequest(ctx, f.sc, action.MergePullRequestInput{RepoName: "repo1", Number: 4}), "has a merge conflict")
	assert.Equal(t, "Error: A pull request already exists for feat -> main.",
		f.uc.CreatePullRequest(ctx, f.sc, action.CreatePullRequestInput{RepoName: "repo1", Title: "t", Head: "feat"}))
	assert.Contains(t, f.uc.ListBranches(ctx, f.sc, "repo1"), "rate limit exceeded")
	assert.Contains(t, f.uc.DeleteRepo(ctx, f.sc, "gone"), "Authentication failed")

	recs := f.sc.Trail().Records()
	require.Len(t, recs, 6)
	assert.Equal(t, "merge", recs[1].Input["merge_method"])
}

func TestConnectivityFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	uc := usecase.New(pkgLog.NewNop(), github.New(github.Config{BaseURL: ts.URL}), nil, usecase.Config{})
	sc := session.New(session.Identity{Login: "alice"}, "", "tok", "T")

	out := uc.ListRepos(context.Background(), sc)
	assert.True(t, strings.HasPrefix(out, "Error connecting to GitHub API:"), out)
	assert.Equal(t, 1, sc.Trail().Len())
}

func TestForkAndCrossRepoPullRequest(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("/repos/octo/tool/forks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, 202, map[string]any{"full_name": "alice/tool", "html_url": "https://github.com/alice/tool"})
	})
	f.mux.HandleFunc("/repos/octo/tool/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body github.NewPullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice:fix", body.Head)
		assert.Equal(t, "develop", body.Base)
		writeJSON(w, 201, map[string]any{"number": 12, "html_url": "https://github.com/octo/tool/pull/12"})
	})
	ctx := context.Background()

	out := f.uc.ForkRepo(ctx, f.sc, "https://github.com/octo/tool.git/")
	assert.Contains(t, out, "- Forked to: alice/tool")

	out = f.uc.CreatePullRequest(ctx, f.sc, action.CreatePullRequestInput{
		RepoName: "octo/tool", Title: "Fix", Head: "fix", Base: "develop", HeadRepo: "alice/tool",
	})
	assert.Contains(t, out, "PR #12: Fix")
	assert.Contains(t, out, "From: alice:fix -> develop")
}

func TestGetRepoInfo(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("/repos/alice/tool", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"full_name": "alice/tool", "fork": true, "default_branch": "main",
			"parent": map[string]any{"full_name": "octo/tool", "name": "tool", "owner": map[string]any{"login": "octo"}, "html_url": "https://github.com/octo/tool"},
			"source": map[string]any{"full_name": "octo/tool", "name": "tool", "owner": map[string]any{"login": "octo"}},
		})
	})

	info := f.uc.GetRepoInfo(context.Background(), f.sc, "tool")
	assert.True(t, info.IsFork)
	require.NotNil(t, info.Parent)
	assert.Equal(t, "octo", info.Parent.Owner)
	assert.Empty(t, info.Error)

	missing := f.uc.GetRepoInfo(context.Background(), f.sc, "bob/other-missing")
	assert.Equal(t, "Repository not found: bob/other-missing", missing.Error)
	assert.Equal(t, 2, f.sc.Trail().Len())
}
