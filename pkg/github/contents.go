package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetContents calls the contents API for path ("" is the repository root).
func (c *Client) GetContents(ctx context.Context, token, owner, repo, path string) (Contents, error) {
	var raw json.RawMessage
	_, err := c.do(ctx, token, http.MethodGet, repoPath(owner, repo)+"/contents/"+escapePath(path), nil, nil, &raw)
	if err != nil {
		return Contents{}, err
	}
	return decodeContents(raw)
}

func decodeContents(raw json.RawMessage) (Contents, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Contents{IsDir: true}, nil
	}
	if trimmed[0] == '[' {
		var entries []ContentEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return Contents{}, fmt.Errorf("github: failed to decode directory listing: %w", err)
		}
		return Contents{IsDir: true, Entries: entries}, nil
	}
	var file ContentEntry
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return Contents{}, fmt.Errorf("github: failed to decode content entry: %w", err)
	}
	return Contents{File: &file}, nil
}
