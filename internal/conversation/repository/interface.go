package repository

import (
	"context"

	"github-agent/internal/conversation"
)

// Repository is the composed interface of the conversation store.
type Repository interface {
	SessionRepository
	TurnRepository

	// EnsureSchema creates the session and turn tables if they are missing.
	EnsureSchema(ctx context.Context) error
}

// SessionRepository covers the session table and its history rollup.
type SessionRepository interface {
	// CreateSession inserts the session if absent. An existing row is not an error.
	CreateSession(ctx context.Context, opt CreateSessionOptions) error
	// GetSession returns the zero Session when the row does not exist.
	GetSession(ctx context.Context, sessionID string) (conversation.Session, error)
	// GetHistory returns an empty History when the row does not exist.
	GetHistory(ctx context.Context, sessionID string) (conversation.History, error)
}

// TurnRepository covers the append-only turn log.
type TurnRepository interface {
	// SaveTurn writes the turn row and merges it into the session history in
	// one transaction. Either both writes are visible or neither is.
	SaveTurn(ctx context.Context, opt SaveTurnOptions) (conversation.Turn, error)
	// ListTurns reads the turn log ordered by timestamp ascending.
	ListTurns(ctx context.Context, opt ListTurnsOptions) ([]conversation.Turn, error)
}
