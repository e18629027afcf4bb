package conversation

import (
	"context"

	"github-agent/internal/session"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Agent turn
	ProcessQuery(ctx context.Context, input QueryInput) (QueryOutput, error)

	// Audit reads
	ListTurns(ctx context.Context, input ListTurnsInput) (ListTurnsOutput, error)
	DetailSession(ctx context.Context, input DetailSessionInput) (DetailSessionOutput, error)

	// Replay renders the prior turns of a session as agent context.
	Replay(ctx context.Context, sessionID string) (string, error)
}

// Agent runs the reasoning loop for one turn, invoking actions through sc.
type Agent interface {
	Run(ctx context.Context, sc *session.Context, query string) (string, error)
}
