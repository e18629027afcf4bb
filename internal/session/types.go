package session

import (
	"github-agent/internal/repocache"
)

const (
	// OutputCap bounds the recorded output of short-form actions.
	OutputCap = 500
	// DiffOutputCap bounds the recorded output of diff-producing actions.
	DiffOutputCap = 1000

	truncationMarker = "..."
)

// Identity is the verified account behind the bearer credential.
type Identity struct {
	Login string
	Name  string
	ID    int64
}

// Credential is an opaque bearer token. Its String form is masked so it can
// never end up in a log line in full.
type Credential string

// Record is one Execution Record: an action invocation and its outcome.
type Record struct {
	ActionName string         `json:"tool_name"`
	Input      map[string]any `json:"input"`
	Output     string         `json:"output"`
}

// Context is the per-request execution context handed by reference into every
// remote action. It is owned by exactly one request and never shared.
type Context struct {
	Identity   Identity
	SessionID  string
	Credential Credential
	Timestamp  string

	trail *Trail
	cache *repocache.Cache
}
