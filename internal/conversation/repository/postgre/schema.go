package postgre

import (
	"context"

	"github-agent/internal/conversation/repository"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_chat (
	session_id TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	history    JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS conversation (
	conv_id          UUID PRIMARY KEY,
	session_id       TEXT NOT NULL REFERENCES session_chat(session_id) ON DELETE CASCADE,
	timestamp        TEXT NOT NULL,
	user_query       TEXT NOT NULL,
	assistant_output JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversation_session_ts ON conversation (session_id, timestamp)`,
}

// EnsureSchema creates the session and turn tables if they are missing.
func (r *implRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.l.Errorf(ctx, "%s: %v", r.dsn("EnsureSchema"), err)
			return repository.Classify(ctx, repository.ErrFailedToMigrate)
		}
	}
	return nil
}
