package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
)

func (r *implRepository) CreateSession(ctx context.Context, opt repo.CreateSessionOptions) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		INSERT INTO session_chat (session_id, username, history, created_at_ms, updated_at_ms)
		VALUES (?, ?, '{}', ?, ?)
		ON CONFLICT(session_id) DO NOTHING`

	nowMs := r.now().UnixMilli()
	if _, err := r.db.ExecContext(ctx, query, opt.SessionID, opt.Username, nowMs, nowMs); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateSession"), err)
		return repo.Classify(ctx, repo.ErrFailedToInsert)
	}
	return nil
}

func (r *implRepository) GetSession(ctx context.Context, sessionID string) (conversation.Session, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		SELECT session_id, username, created_at_ms, updated_at_ms
		FROM session_chat
		WHERE session_id = ?`

	var (
		s                  conversation.Session
		createdMs, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&s.SessionID, &s.Username, &createdMs, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.Session{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSession"), err)
		return conversation.Session{}, repo.Classify(ctx, repo.ErrFailedToGet)
	}
	s.CreatedAt = time.UnixMilli(createdMs).UTC()
	s.UpdatedAt = time.UnixMilli(updated).UTC()
	return s, nil
}

func (r *implRepository) GetHistory(ctx context.Context, sessionID string) (conversation.History, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `SELECT history FROM session_chat WHERE session_id = ?`

	var raw string
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return conversation.History{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetHistory"), err)
		return nil, repo.Classify(ctx, repo.ErrFailedToGet)
	}

	h := conversation.History{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &h); err != nil {
			r.l.Errorf(ctx, "%s: %v", r.dsn("GetHistory"), errors.Wrap(err, "decode history"))
			return nil, repo.Classify(ctx, repo.ErrFailedToGet)
		}
	}
	return h, nil
}
