package repocache

import (
	"context"
	"strings"

	"github-agent/pkg/github"
)

// Lister is the subset of the GitHub client the builder walks with.
type Lister interface {
	GetContents(ctx context.Context, token, owner, repo, path string) (github.Contents, error)
	ListUserRepos(ctx context.Context, token string, opt github.ListReposOptions) ([]github.Repository, error)
}

// Builder walks repository trees through a Lister.
type Builder struct {
	lister Lister
}

// NewBuilder creates a tree builder.
func NewBuilder(lister Lister) *Builder {
	return &Builder{lister: lister}
}

// Build walks owner/repo depth-first and returns its snapshot. A failed
// directory listing truncates that subtree and marks the snapshot partial.
func (b *Builder) Build(ctx context.Context, token, owner, repo, cachedAt string) Snapshot {
	entries, partial := b.walk(ctx, token, owner, repo, "")

	s := Snapshot{
		Owner:    owner,
		Repo:     repo,
		FullName: owner + "/" + repo,
		Entries:  entries,
		CachedAt: cachedAt,
		Partial:  partial,
	}
	for _, e := range entries {
		switch e.Kind {
		case KindFile:
			s.FileCount++
		case KindDir:
			s.DirCount++
		}
	}
	return s
}

// BuildAll builds a snapshot for every repository visible to token. Only the
// first page of repositories is enumerated.
func (b *Builder) BuildAll(ctx context.Context, token, cachedAt string) ([]Snapshot, error) {
	repos, err := b.lister.ListUserRepos(ctx, token, github.ListReposOptions{Type: "all", PerPage: github.DefaultPageSize})
	if err != nil {
		return nil, err
	}

	snaps := make([]Snapshot, 0, len(repos))
	for _, r := range repos {
		owner, name, ok := strings.Cut(r.FullName, "/")
		if !ok {
			continue
		}
		snaps = append(snaps, b.Build(ctx, token, owner, name, cachedAt))
	}
	return snaps, nil
}

func (b *Builder) walk(ctx context.Context, token, owner, repo, path string) ([]Entry, bool) {
	contents, err := b.lister.GetContents(ctx, token, owner, repo, path)
	if err != nil {
		return nil, true
	}
	if !contents.IsDir {
		return nil, false
	}

	var (
		entries []Entry
		partial bool
	)
	for _, item := range contents.Entries {
		switch item.Type {
		case string(KindFile):
			entries = append(entries, Entry{
				Name:        item.Name,
				Path:        item.Path,
				Kind:        KindFile,
				Size:        item.Size,
				DownloadURL: item.DownloadURL,
			})
		case string(KindDir):
			entries = append(entries, Entry{Name: item.Name, Path: item.Path, Kind: KindDir})
			sub, subPartial := b.walk(ctx, token, owner, repo, item.Path)
			entries = append(entries, sub...)
			partial = partial || subPartial
		}
	}
	return entries, partial
}
