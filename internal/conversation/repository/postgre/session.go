package postgre

import (
	"context"
	"database/sql"
	"encoding/json"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
)

// CreateSession inserts the session row; a conflicting session_id is ignored.
func (r *implRepository) CreateSession(ctx context.Context, opt repo.CreateSessionOptions) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		INSERT INTO session_chat (session_id, username)
		VALUES ($1, $2)
		ON CONFLICT (session_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, opt.SessionID, opt.Username); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateSession"), err)
		return repo.Classify(ctx, repo.ErrFailedToInsert)
	}
	return nil
}

// GetSession returns session metadata without history.
// Returns zero-value Session (SessionID == "") when not found.
func (r *implRepository) GetSession(ctx context.Context, sessionID string) (conversation.Session, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		SELECT session_id, username, created_at, updated_at
		FROM session_chat
		WHERE session_id = $1`

	var s conversation.Session
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&s.SessionID, &s.Username, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return conversation.Session{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSession"), err)
		return conversation.Session{}, repo.Classify(ctx, repo.ErrFailedToGet)
	}
	return s, nil
}

// GetHistory returns the history rollup of a session.
func (r *implRepository) GetHistory(ctx context.Context, sessionID string) (conversation.History, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `SELECT history FROM session_chat WHERE session_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&raw)
	if err == sql.ErrNoRows {
		return conversation.History{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetHistory"), err)
		return nil, repo.Classify(ctx, repo.ErrFailedToGet)
	}

	h := conversation.History{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &h); err != nil {
			r.l.Errorf(ctx, "%s decode: %v", r.dsn("GetHistory"), err)
			return nil, repo.Classify(ctx, repo.ErrFailedToGet)
		}
	}
	return h, nil
}
