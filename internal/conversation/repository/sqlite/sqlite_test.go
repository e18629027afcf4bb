package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	sqliteconn "github-agent/config/sqlite"
	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
	"github-agent/internal/conversation/repository/sqlite"
	"github-agent/internal/session"
	pkgLog "github-agent/pkg/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRepo(t *testing.T) repo.Repository {
	t.Helper()
	db, err := sqliteconn.Open(filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := sqlite.New(db, pkgLog.NewNop(), repo.Config{})
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

func output(resp string, records ...session.Record) conversation.AssistantOutput {
	out := conversation.AssistantOutput{
		ToolsResponses:         map[string]session.Record{},
		FinalAssistantResponse: resp,
	}
	for i, rec := range records {
		out.ToolsResponses[session.ToolKey(i)] = rec
	}
	return out
}

func TestSaveTurnMergesHistory(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s1", Username: "alice"}))

	first, err := r.SaveTurn(ctx, repo.SaveTurnOptions{
		SessionID:       "s1",
		Timestamp:       "2024-01-01T10:00:00Z",
		UserQuery:       "list my repos",
		AssistantOutput: output("You have 2 repos.", session.Record{ActionName: "list_repos", Input: map[string]any{}, Output: "Found 2 repositories"}),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ConvID)

	second, err := r.SaveTurn(ctx, repo.SaveTurnOptions{
		SessionID:       "s1",
		Timestamp:       "2024-01-01T10:05:00Z",
		UserQuery:       "thanks",
		AssistantOutput: output("You're welcome."),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ConvID, second.ConvID)

	h, err := r.GetHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "list my repos", h[first.ConvID].UserQuery)
	assert.Equal(t, "list_repos", h[first.ConvID].AssistantOutput.ToolsResponses["tool_0"].ActionName)
	assert.Equal(t, "You're welcome.", h[second.ConvID].AssistantOutput.FinalAssistantResponse)
}

func TestListTurnsOrderedByTimestamp(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s1", Username: "alice"}))

	// Saved out of order on purpose.
	for _, ts := range []string{"2024-01-01T10:05:00Z", "2024-01-01T10:00:00Z", "2024-01-01T10:10:00Z"} {
		_, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: "s1", Timestamp: ts, UserQuery: "q " + ts, AssistantOutput: output("a")})
		require.NoError(t, err)
	}

	turns, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "2024-01-01T10:00:00Z", turns[0].Timestamp)
	assert.Equal(t, "2024-01-01T10:05:00Z", turns[1].Timestamp)
	assert.Equal(t, "2024-01-01T10:10:00Z", turns[2].Timestamp)
	assert.NotNil(t, turns[0].AssistantOutput.ToolsResponses)

	limited, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "s1", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	other, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSaveTurnWithoutSessionRollsBack(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	_, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: "ghost", Timestamp: "2024-01-01T10:00:00Z", UserQuery: "hi", AssistantOutput: output("hello")})
	require.ErrorIs(t, err, repo.ErrSessionMissing)

	turns, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, turns, "turn insert must not survive a failed history merge")
}

func TestCreateSessionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s1", Username: "alice"}))
	_, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: "s1", Timestamp: "t1", UserQuery: "q", AssistantOutput: output("a")})
	require.NoError(t, err)

	// A second create must neither fail nor reset the history or owner.
	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s1", Username: "mallory"}))

	s, err := r.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
	assert.False(t, s.CreatedAt.IsZero())

	h, err := r.GetHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestMissingSessionReturnsZeroValues(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	s, err := r.GetSession(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, s.SessionID)

	h, err := r.GetHistory(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestOperationsTimeOutWhenPoolIsHeld(t *testing.T) {
	ctx := context.Background()
	db, err := sqliteconn.Open(filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := sqlite.New(db, pkgLog.NewNop(), repo.Config{QueryTimeout: 100 * time.Millisecond})
	require.NoError(t, r.EnsureSchema(ctx))
	require.NoError(t, r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s1", Username: "alice"}))

	// Pin the only pooled connection so every call has to wait for one.
	db.SetMaxOpenConns(1)
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	calls := map[string]func() error{
		"CreateSession": func() error {
			return r.CreateSession(ctx, repo.CreateSessionOptions{SessionID: "s2", Username: "bob"})
		},
		"GetSession": func() error {
			_, err := r.GetSession(ctx, "s1")
			return err
		},
		"GetHistory": func() error {
			_, err := r.GetHistory(ctx, "s1")
			return err
		},
		"SaveTurn": func() error {
			_, err := r.SaveTurn(ctx, repo.SaveTurnOptions{SessionID: "s1", Timestamp: "t1", UserQuery: "q", AssistantOutput: output("a")})
			return err
		},
		"ListTurns": func() error {
			_, err := r.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "s1"})
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			err := call()
			require.Error(t, err)
			assert.ErrorIs(t, err, repo.ErrTimeout)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}
