package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
)

// SaveTurn inserts the turn and json_patches it into the session history in
// a single transaction.
func (r *implRepository) SaveTurn(ctx context.Context, opt repo.SaveTurnOptions) (conversation.Turn, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	now := r.now()
	opt = opt.Normalize(now)

	output, err := json.Marshal(opt.AssistantOutput)
	if err != nil {
		return conversation.Turn{}, errors.Wrap(err, "encode assistant_output")
	}
	patch, err := json.Marshal(opt.HistoryPatch())
	if err != nil {
		return conversation.Turn{}, errors.Wrap(err, "encode history patch")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToInsert)
	}
	defer func() { _ = tx.Rollback() }()

	const insertTurn = `
		INSERT INTO conversation (conv_id, session_id, timestamp, user_query, assistant_output, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertTurn,
		opt.ConvID, opt.SessionID, opt.Timestamp, opt.UserQuery, string(output), now.UnixMilli()); err != nil {
		r.l.Errorf(ctx, "%s insert: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToInsert)
	}

	const mergeHistory = `
		UPDATE session_chat
		SET history = json_patch(history, ?),
		    updated_at_ms = ?
		WHERE session_id = ?`
	res, err := tx.ExecContext(ctx, mergeHistory, string(patch), now.UnixMilli(), opt.SessionID)
	if err != nil {
		r.l.Errorf(ctx, "%s merge: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToUpdate)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		r.l.Errorf(ctx, "%s merge: session %s not updated", r.dsn("SaveTurn"), opt.SessionID)
		return conversation.Turn{}, repo.ErrSessionMissing
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToInsert)
	}
	return opt.Turn(), nil
}

func (r *implRepository) ListTurns(ctx context.Context, opt repo.ListTurnsOptions) ([]conversation.Turn, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		SELECT conv_id, session_id, timestamp, user_query, assistant_output
		FROM conversation
		WHERE session_id = ?
		ORDER BY timestamp ASC, created_at_ms ASC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, opt.SessionID, opt.EffectiveLimit())
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTurns"), err)
		return nil, repo.Classify(ctx, repo.ErrFailedToList)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTurns"), err)
		return nil, repo.Classify(ctx, repo.ErrFailedToList)
	}
	return turns, nil
}

func scanTurns(rows *sql.Rows) ([]conversation.Turn, error) {
	turns := make([]conversation.Turn, 0)
	for rows.Next() {
		var (
			t   conversation.Turn
			raw string
		)
		if err := rows.Scan(&t.ConvID, &t.SessionID, &t.Timestamp, &t.UserQuery, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(raw), &t.AssistantOutput); err != nil {
			return nil, errors.Wrap(err, "decode assistant_output")
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
