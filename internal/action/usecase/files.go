package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github-agent/internal/action"
	"github-agent/internal/repocache"
	"github-agent/internal/session"
	"github-agent/pkg/github"
)

// ListRepoFiles lists one directory of a repository. When the session cache
// is populated, names that are not cached are rejected with the known keys.
func (uc *implUseCase) ListRepoFiles(ctx context.Context, sc *session.Context, repoName, path string) string {
	start := uc.now()
	shownPath := path
	if shownPath == "" {
		shownPath = "root"
	}

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameListRepoFiles, start, map[string]any{"repo_name": repoName, "path": shownPath}, err)
	}
	full := ref.fullName()
	input := map[string]any{"repo_name": full, "path": shownPath}

	cache := sc.Cache()
	if !cache.Empty() && !cache.Has(full) {
		keys := cache.Keys()
		var b strings.Builder
		fmt.Fprintf(&b, "Repository '%s' not found in cached repositories.\n\nYou have %d cached repositories:\n", full, len(keys))
		for i, k := range keys {
			fmt.Fprintf(&b, "%d. %s\n", i+1, k)
		}
		return uc.record(ctx, sc, action.NameListRepoFiles, start, input, b.String(), github.KindNotFound.String(), session.OutputCap)
	}

	contents, err := uc.gh.GetContents(ctx, sc.Credential.Token(), ref.owner, ref.repo, path)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "listing repository contents",
			notFound:  fmt.Sprintf("Error: Repository '%s' or path '%s' not found.", full, path),
			forbidden: fmt.Sprintf("Error: You don't have permission to access '%s'. The repository might be private.", full),
		})
		return uc.record(ctx, sc, action.NameListRepoFiles, start, input, out, outcome, session.OutputCap)
	}

	return uc.record(ctx, sc, action.NameListRepoFiles, start, input, formatListing(full, shownPath, contents), outcomeSuccess, session.OutputCap)
}

func formatListing(full, shownPath string, contents github.Contents) string {
	if !contents.IsDir {
		f := contents.File
		return fmt.Sprintf(`File: %s
- Type: %s
- Size: %d bytes
- Path: %s
- Download URL: %s`, f.Name, messageOr(f.Type, "file"), f.Size, f.Path, messageOr(f.DownloadURL, "N/A"))
	}
	if len(contents.Entries) == 0 {
		return fmt.Sprintf("The directory '%s' in %s is empty.", shownPath, full)
	}

	var dirs, files []github.ContentEntry
	for _, e := range contents.Entries {
		switch e.Type {
		case "dir":
			dirs = append(dirs, e)
		case "file":
			files = append(files, e)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contents of '%s' in %s:\n", shownPath, full)
	if len(dirs) > 0 {
		b.WriteString("\nDirectories:\n")
		for _, d := range dirs {
			fmt.Fprintf(&b, "  - %s/\n", d.Name)
		}
	}
	if len(files) > 0 {
		b.WriteString("\nFiles:\n")
		for _, f := range files {
			fmt.Fprintf(&b, "  - %s (%s)\n", f.Name, formatSize(f.Size))
		}
	}
	fmt.Fprintf(&b, "\nTotal: %d directories, %d files", len(dirs), len(files))
	return b.String()
}

// GetFileContent fetches and decodes one file. A 404 against a cached
// repository lists every cached file path so the agent can retry.
func (uc *implUseCase) GetFileContent(ctx context.Context, sc *session.Context, repoName, filePath string) string {
	start := uc.now()

	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameGetFileContent, start, map[string]any{"repo_name": repoName, "file_path": filePath}, err)
	}
	full := ref.fullName()
	input := map[string]any{"repo_name": full, "file_path": filePath}

	if strings.TrimSpace(filePath) == "" {
		return uc.invalid(ctx, sc, action.NameGetFileContent, start, input, fmt.Errorf("file path is required"))
	}

	contents, err := uc.gh.GetContents(ctx, sc.Credential.Token(), ref.owner, ref.repo, filePath)
	if err != nil {
		out, outcome := describe(err, failure{
			doing:     "fetching file content",
			notFound:  notFoundWithFallback(sc.Cache(), full, filePath),
			forbidden: fmt.Sprintf("Error: You don't have permission to access '%s'. The repository might be private.", full),
		})
		return uc.record(ctx, sc, action.NameGetFileContent, start, input, out, outcome, session.OutputCap)
	}

	out, outcome := formatFile(full, filePath, contents)
	return uc.record(ctx, sc, action.NameGetFileContent, start, input, out, outcome, session.OutputCap)
}

// notFoundWithFallback is the 404 message of GetFileContent.
func notFoundWithFallback(cache *repocache.Cache, full, filePath string) string {
	snap, ok := cache.Get(full)
	if !ok {
		return fmt.Sprintf("Error: File '%s' not found in repository '%s'.", filePath, full)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: File '%s' not found in repository '%s'. Available files in this repository:\n", filePath, full)
	for _, p := range snap.FilePaths() {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	b.WriteString("Please choose the closest matching file from the list above and try again.")
	return b.String()
}

func formatFile(full, filePath string, contents github.Contents) (string, string) {
	if contents.IsDir || contents.File == nil {
		return fmt.Sprintf("Error: '%s' is not a file. It appears to be a directory.", filePath), outcomeInvalid
	}
	f := contents.File
	if f.Type != "file" {
		return fmt.Sprintf("Error: '%s' is not a file. It appears to be a %s.", filePath, messageOr(f.Type, "directory")), outcomeInvalid
	}

	header := fmt.Sprintf("File: %s\nPath: %s\nSize: %s\nRepository: %s\n", f.Name, filePath, formatSize(f.Size), full)

	encoding := messageOr(f.Encoding, "base64")
	if encoding != "base64" {
		return fmt.Sprintf("Error: Unsupported encoding '%s'", encoding), github.KindUnexpected.String()
	}

	raw, err := base64.StdEncoding.DecodeString(stripWhitespace(f.Content))
	if err != nil {
		return fmt.Sprintf("Error decoding file content: %v", err), github.KindUnexpected.String()
	}

	if !utf8.Valid(raw) {
		return header + fmt.Sprintf("Type: Binary file\n\nThis is a binary file and cannot be displayed as text.\nDownload URL: %s", messageOr(f.DownloadURL, "N/A")), outcomeSuccess
	}

	content := string(raw)
	if n := utf8.RuneCountInString(content); n > maxFileChars {
		content = string([]rune(content)[:maxFileChars]) + fmt.Sprintf("\n\n... (truncated, showing first %d characters of %d total)", maxFileChars, n)
	}
	return header + "\n--- Content ---\n" + content, outcomeSuccess
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, s)
}

// CacheRepoStructure snapshots one repository, or every repository visible
// to the user when repoName is empty. Existing snapshots are replaced.
func (uc *implUseCase) CacheRepoStructure(ctx context.Context, sc *session.Context, repoName string) string {
	start := uc.now()
	token := sc.Credential.Token()
	cache := sc.Cache()

	if strings.TrimSpace(repoName) == "" {
		input := map[string]any{"repo_name": "all repositories"}
		snaps, err := uc.builder.BuildAll(ctx, token, sc.Timestamp)
		if err != nil {
			out, outcome := describe(err, failure{doing: "caching repository structures"})
			return uc.record(ctx, sc, action.NameCacheRepoStructure, start, input, out, outcome, session.OutputCap)
		}

		partial := 0
		for _, s := range snaps {
			cache.Put(s)
			if s.Partial {
				partial++
			}
		}
		tot := repocache.Sum(snaps)
		out := fmt.Sprintf(`Successfully cached all repository structures!
- Repositories cached: %d
- Total files: %d
- Total directories: %d`, tot.Repos, tot.Files, tot.Dirs)
		if partial > 0 {
			out += fmt.Sprintf("\n- Incomplete: %d repositories had directories that could not be listed", partial)
		}
		out += "\n\nAll repository structures are now cached and can be quickly accessed."
		uc.l.Infof(ctx, "action.%s: user=%s repos=%d files=%d dirs=%d", action.NameCacheRepoStructure, sc.Identity.Login, tot.Repos, tot.Files, tot.Dirs)
		return uc.record(ctx, sc, action.NameCacheRepoStructure, start, input, out, outcomeSuccess, session.OutputCap)
	}

	input := map[string]any{"repo_name": repoName}
	ref, err := resolveRepo(sc, repoName)
	if err != nil {
		return uc.invalid(ctx, sc, action.NameCacheRepoStructure, start, input, err)
	}

	snap := uc.builder.Build(ctx, token, ref.owner, ref.repo, sc.Timestamp)
	cache.Put(snap)

	out := fmt.Sprintf(`Successfully cached repository structure!
- Repository: %s
- Files: %d
- Directories: %d
- Total items: %d`, snap.FullName, snap.FileCount, snap.DirCount, len(snap.Entries))
	if snap.Partial {
		out += "\n- Incomplete: some directories could not be listed"
	}
	out += "\n\nThe repository structure is now cached and can be quickly accessed."
	return uc.record(ctx, sc, action.NameCacheRepoStructure, start, input, out, outcomeSuccess, session.OutputCap)
}
