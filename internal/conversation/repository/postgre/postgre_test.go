//go:build integration

package postgre_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
	"github-agent/internal/conversation/repository/postgre"
	"github-agent/internal/session"
	pkgLog "github-agent/pkg/log"
)

const dsnEnv = "GITHUB_AGENT_TEST_POSTGRES_DSN"

// newRepo connects to the database named by GITHUB_AGENT_TEST_POSTGRES_DSN.
// Run with: go test -tags integration ./internal/conversation/repository/postgre/
func newRepo(t *testing.T) (repo.Repository, *sql.DB) {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Fatalf("%s must be set when running with -tags integration", dsnEnv)
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(context.Background()))

	r := postgre.New(db, pkgLog.NewNop(), repo.Config{})
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r, db
}

func TestSaveTurnRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, db := newRepo(t)

	sid := "test-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM session_chat WHERE session_id = $1`, sid) })

	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: sid, Username: "alice"}))
	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: sid, Username: "alice"}))

	out := conversation.AssistantOutput{
		ToolsResponses:         map[string]session.Record{"tool_0": {ActionName: "list_repos", Input: map[string]any{}, Output: "Found 1 repositories"}},
		FinalAssistantResponse: "one repo",
	}
	t2, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: sid, Timestamp: "2024-01-01T10:05:00Z", UserQuery: "second", AssistantOutput: out})
	require.NoError(t, err)
	t1, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: sid, Timestamp: "2024-01-01T10:00:00Z", UserQuery: "first", AssistantOutput: out})
	require.NoError(t, err)

	turns, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: sid})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, t1.ConvID, turns[0].ConvID)
	assert.Equal(t, t2.ConvID, turns[1].ConvID)

	h, err := r.GetHistory(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, h, 2)
	assert.Equal(t, "list_repos", h[t1.ConvID].AssistantOutput.ToolsResponses["tool_0"].ActionName)
}

func TestSaveTurnUnknownSession(t *testing.T) {
	r, _ := newRepo(t)

	_, err := r.SaveTurn(context.Background(), repo.SaveTurnOptions{SessionID: "missing-" + uuid.NewString(), UserQuery: "q"})
	assert.Error(t, err)
}

func TestQueryTimeoutWhenPoolIsHeld(t *testing.T) {
	ctx := context.Background()
	_, db := newRepo(t)
	r := postgre.New(db, pkgLog.NewNop(), repo.Config{QueryTimeout: 100 * time.Millisecond})

	db.SetMaxOpenConns(1)
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now()
	_, err = r.GetSession(ctx, "s-"+uuid.NewString())
	require.ErrorIs(t, err, repo.ErrFailedToGet)
	assert.ErrorIs(t, err, repo.ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}
