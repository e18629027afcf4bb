package conversation

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionForbidden  = errors.New("session belongs to another user")
	ErrAgentUnavailable  = errors.New("agent system not initialized")
	ErrAgentFailed       = errors.New("agent run failed")
	ErrPersistenceFailed = errors.New("failed to persist conversation")
)
