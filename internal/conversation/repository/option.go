package repository

import (
	"time"

	"github.com/google/uuid"

	"github-agent/internal/conversation"
	"github-agent/internal/session"
)

// DefaultListLimit is used by ListTurns when no positive limit is given.
const DefaultListLimit = 50

// DefaultQueryTimeout bounds one store operation, including the wait for a
// pooled connection.
const DefaultQueryTimeout = 5 * time.Second

// Config tunes a store backend.
type Config struct {
	QueryTimeout time.Duration
}

// EffectiveQueryTimeout returns the bound to apply to each operation.
func (c Config) EffectiveQueryTimeout() time.Duration {
	if c.QueryTimeout <= 0 {
		return DefaultQueryTimeout
	}
	return c.QueryTimeout
}

// CreateSessionOptions holds parameters for creating a session row.
type CreateSessionOptions struct {
	SessionID string
	Username  string
}

// SaveTurnOptions holds parameters for persisting a completed turn.
// ConvID is generated when empty; Timestamp defaults to now in RFC 3339.
type SaveTurnOptions struct {
	ConvID          string
	SessionID       string
	Timestamp       string
	UserQuery       string
	AssistantOutput conversation.AssistantOutput
}

// Normalize fills the generated fields: a random v4 conv_id and the current
// time when no timestamp was given.
func (opt SaveTurnOptions) Normalize(now time.Time) SaveTurnOptions {
	if opt.ConvID == "" {
		opt.ConvID = uuid.NewString()
	}
	if opt.Timestamp == "" {
		opt.Timestamp = now.UTC().Format(time.RFC3339Nano)
	}
	if opt.AssistantOutput.ToolsResponses == nil {
		opt.AssistantOutput.ToolsResponses = map[string]session.Record{}
	}
	return opt
}

// Turn returns the turn row described by a normalized opt.
func (opt SaveTurnOptions) Turn() conversation.Turn {
	return conversation.Turn{
		ConvID:          opt.ConvID,
		SessionID:       opt.SessionID,
		Timestamp:       opt.Timestamp,
		UserQuery:       opt.UserQuery,
		AssistantOutput: opt.AssistantOutput,
	}
}

// HistoryPatch is the single-key object merged into the session history.
func (opt SaveTurnOptions) HistoryPatch() conversation.History {
	return conversation.History{
		opt.ConvID: {
			Timestamp:       opt.Timestamp,
			UserQuery:       opt.UserQuery,
			AssistantOutput: opt.AssistantOutput,
		},
	}
}

// ListTurnsOptions holds filter and pagination parameters for the turn log.
type ListTurnsOptions struct {
	SessionID string
	Limit     int
}

// EffectiveLimit returns the page size to query with.
func (opt ListTurnsOptions) EffectiveLimit() int {
	if opt.Limit <= 0 {
		return DefaultListLimit
	}
	return opt.Limit
}
