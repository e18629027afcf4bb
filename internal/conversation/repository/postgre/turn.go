package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
)

// SaveTurn inserts the turn and merges it into session_chat.history in one
// transaction. A missing session row rolls the insert back.
func (r *implRepository) SaveTurn(ctx context.Context, opt repo.SaveTurnOptions) (conversation.Turn, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	opt = opt.Normalize(r.now())

	output, err := json.Marshal(opt.AssistantOutput)
	if err != nil {
		return conversation.Turn{}, err
	}
	patch, err := json.Marshal(opt.HistoryPatch())
	if err != nil {
		return conversation.Turn{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToInsert)
	}
	defer tx.Rollback()

	const insertTurn = `
		INSERT INTO conversation (conv_id, session_id, timestamp, user_query, assistant_output)
		VALUES ($1, $2, $3, $4, $5::jsonb)`
	if _, err := tx.ExecContext(ctx, insertTurn, opt.ConvID, opt.SessionID, opt.Timestamp, opt.UserQuery, string(output)); err != nil {
		r.l.Errorf(ctx, "%s insert: %v", r.dsn("SaveTurn"), err)
		return conversation.Turn{}, repo.Classify(ctx, repo.ErrFailedToInsert)
	}

	const mergeHistory = `
		UPDATE session_chat
		SET history = history || $1::jsonb,
		    updated_at = NOW()
		WHERE session_id = $2`
	res, err := tx.ExecContext(ctx, mergeHistory, string(patch), opt.SessionID)
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

// ListTurns returns the turn log of a session ordered by timestamp ascending.
func (r *implRepository) ListTurns(ctx context.Context, opt repo.ListTurnsOptions) ([]conversation.Turn, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	const query = `
		SELECT conv_id::text, session_id, timestamp, user_query, assistant_output
		FROM conversation
		WHERE session_id = $1
		ORDER BY timestamp ASC
		LIMIT $2`

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
			raw []byte
		)
		if err := rows.Scan(&t.ConvID, &t.SessionID, &t.Timestamp, &t.UserQuery, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &t.AssistantOutput); err != nil {
			return nil, errors.Join(errors.New("decode assistant_output"), err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
