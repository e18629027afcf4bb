package repocache

import "sort"

// Kind is the entry kind of a cached path.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Entry is one file or directory of a cached repository tree.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Kind        Kind   `json:"type"`
	Size        int64  `json:"size,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// Snapshot is the flattened tree of one repository. Entries are kept in
// pre-order fetch order. Partial is set when at least one directory listing
// failed and its subtree is missing.
type Snapshot struct {
	Owner     string  `json:"owner"`
	Repo      string  `json:"repo"`
	FullName  string  `json:"full_name"`
	FileCount int     `json:"file_count"`
	DirCount  int     `json:"dir_count"`
	Entries   []Entry `json:"files"`
	CachedAt  string  `json:"cached_at"`
	Partial   bool    `json:"partial"`
}

// FilePaths returns the paths of file entries sorted ascending.
func (s Snapshot) FilePaths() []string {
	paths := make([]string, 0, s.FileCount)
	for _, e := range s.Entries {
		if e.Kind == KindFile {
			paths = append(paths, e.Path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Totals aggregates the counts of several snapshots.
type Totals struct {
	Repos int
	Files int
	Dirs  int
}
