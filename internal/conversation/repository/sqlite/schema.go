package sqlite

import (
	"context"

	"github.com/pkg/errors"

	"github-agent/internal/conversation/repository"
)

// conversation.session_id carries no foreign key: a turn for an unknown
// session is rejected by SaveTurn when the history merge touches no row.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_chat (
		session_id    TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		history       TEXT NOT NULL DEFAULT '{}',
		created_at_ms INTEGER NOT NULL,
		updated_at_ms INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS conversation (
		conv_id          TEXT PRIMARY KEY,
		session_id       TEXT NOT NULL,
		timestamp        TEXT NOT NULL,
		user_query       TEXT NOT NULL,
		assistant_output TEXT NOT NULL,
		created_at_ms    INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS conversation_by_session_ts ON conversation(session_id, timestamp);`,
}

func (r *implRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	for _, st := range schema {
		if _, err := r.db.ExecContext(ctx, st); err != nil {
			r.l.Errorf(ctx, "%s: %v", r.dsn("EnsureSchema"), errors.Wrap(err, "migrate"))
			return repository.Classify(ctx, repository.ErrFailedToMigrate)
		}
	}
	return nil
}
