package session

import (
	"fmt"

	"github-agent/internal/repocache"
)

// New builds the execution context for one request.
func New(identity Identity, sessionID string, credential Credential, timestamp string) *Context {
	return &Context{
		Identity:   identity,
		SessionID:  sessionID,
		Credential: credential,
		Timestamp:  timestamp,
		trail:      &Trail{},
		cache:      repocache.New(),
	}
}

// Trail returns the turn's audit trail.
func (c *Context) Trail() *Trail {
	return c.trail
}

// Cache returns the turn's repository tree cache.
func (c *Context) Cache() *repocache.Cache {
	return c.cache
}

// Persistent reports whether turns of this context are written to the store.
func (c *Context) Persistent() bool {
	return c.SessionID != ""
}

// Token returns the raw bearer token for outbound calls.
func (c Credential) Token() string {
	return string(c)
}

func (c Credential) String() string {
	s := string(c)
	if len(s) <= 8 {
		return "****"
	}
	return fmt.Sprintf("%s…%s", s[:4], s[len(s)-4:])
}

// GoString keeps %#v from leaking the token as well.
func (c Credential) GoString() string {
	return c.String()
}
