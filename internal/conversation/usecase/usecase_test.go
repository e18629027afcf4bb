package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteconn "github-agent/config/sqlite"
	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
	"github-agent/internal/conversation/repository/sqlite"
	"github-agent/internal/conversation/usecase"
	"github-agent/internal/session"
	pkgLog "github-agent/pkg/log"
)

// scriptedAgent records every query and invokes one fake action per run.
type scriptedAgent struct {
	queries []string
	answer  string
	err     error
}

func (a *scriptedAgent) Run(ctx context.Context, sc *session.Context, query string) (string, error) {
	a.queries = append(a.queries, query)
	if a.err != nil {
		return "", a.err
	}
	sc.Trail().Append("get_user_info", map[string]any{}, "Username: "+sc.Identity.Login, session.OutputCap)
	return a.answer, nil
}

func newStore(t *testing.T) repo.Repository {
	t.Helper()
	db, err := sqliteconn.Open(filepath.Join(t.TempDir(), "conv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	r := sqlite.New(db, pkgLog.NewNop(), repo.Config{})
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

func queryInput(sessionID, ts, q string) conversation.QueryInput {
	return conversation.QueryInput{
		User:       "alice",
		Timestamp:  ts,
		Query:      q,
		SessionID:  sessionID,
		Identity:   session.Identity{Login: "alice", ID: 7},
		Credential: session.Credential("gho_0123456789abcdef"),
	}
}

func TestProcessQueryPersistsTurn(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	agent := &scriptedAgent{answer: "Hi alice"}
	uc := usecase.New(store, agent, pkgLog.NewNop())

	out, err := uc.ProcessQuery(ctx, queryInput("s1", "2024-01-01T10:00:00Z", "who am I?"))
	require.NoError(t, err)

	assert.Equal(t, conversation.StatusSuccess, out.Status)
	assert.Equal(t, "s1", out.SessionID)
	assert.Equal(t, "Hi alice", out.AssistantOutput.FinalAssistantResponse)
	require.Contains(t, out.AssistantOutput.ToolsResponses, "tool_0")
	assert.Equal(t, "get_user_info", out.AssistantOutput.ToolsResponses["tool_0"].ActionName)
	assert.Equal(t, "[Current Query]\nwho am I?", agent.queries[0])

	turns, err := store.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, out.ConvID, turns[0].ConvID)
	assert.Equal(t, "2024-01-01T10:00:00Z", turns[0].Timestamp)
}

func TestProcessQueryReplaysHistoryByTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	agent := &scriptedAgent{answer: "ok"}
	uc := usecase.New(store, agent, pkgLog.NewNop())

	_, err := uc.ProcessQuery(ctx, queryInput("s1", "T2", "second"))
	require.NoError(t, err)
	_, err = uc.ProcessQuery(ctx, queryInput("s1", "T1", "first"))
	require.NoError(t, err)

	replay, err := uc.Replay(ctx, "s1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(replay, "\n[Previous Conversation]\n[T1]\nUser: first\n"))
	assert.True(t, strings.HasSuffix(replay, "[End of Previous Conversation]\n\n"))
	assert.Less(t, strings.Index(replay, "[T1]"), strings.Index(replay, "[T2]"))
	assert.Contains(t, replay, `Tools_Responses: {"tool_0":{"tool_name":"get_user_info"`)
	assert.Contains(t, replay, "Assistant: ok\n\n")

	// The third turn sees both earlier turns ahead of the current query.
	_, err = uc.ProcessQuery(ctx, queryInput("s1", "T3", "third"))
	require.NoError(t, err)
	last := agent.queries[len(agent.queries)-1]
	assert.Equal(t, replay+"[Current Query]\nthird", last)
}

func TestProcessQueryWithoutSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	agent := &scriptedAgent{answer: "hello"}
	uc := usecase.New(store, agent, pkgLog.NewNop())

	out, err := uc.ProcessQuery(ctx, queryInput("", "t", ""))
	require.NoError(t, err)

	assert.Equal(t, "[Current Query]\nHello from alice", agent.queries[0])
	_, err = uuid.Parse(out.ConvID)
	assert.NoError(t, err)
	assert.Empty(t, out.SessionID)

	turns, err := store.ListTurns(ctx, repo.ListTurnsOptions{SessionID: ""})
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestProcessQueryFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("no agent", func(t *testing.T) {
		uc := usecase.New(newStore(t), nil, pkgLog.NewNop())
		_, err := uc.ProcessQuery(ctx, queryInput("s1", "t", "q"))
		assert.ErrorIs(t, err, conversation.ErrAgentUnavailable)
	})

	t.Run("agent error", func(t *testing.T) {
		uc := usecase.New(newStore(t), &scriptedAgent{err: errors.New("llm down")}, pkgLog.NewNop())
		_, err := uc.ProcessQuery(ctx, queryInput("s1", "t", "q"))
		assert.ErrorIs(t, err, conversation.ErrAgentFailed)
	})

	t.Run("store error", func(t *testing.T) {
		uc := usecase.New(failingStore{newStore(t)}, &scriptedAgent{answer: "a"}, pkgLog.NewNop())
		_, err := uc.ProcessQuery(ctx, queryInput("s1", "t", "q"))
		assert.ErrorIs(t, err, conversation.ErrPersistenceFailed)
	})
}

// failingStore rejects every turn write.
type failingStore struct {
	repo.Repository
}

func (failingStore) SaveTurn(ctx context.Context, opt repo.SaveTurnOptions) (conversation.Turn, error) {
	return conversation.Turn{}, repo.ErrFailedToInsert
}

func TestProcessQueryRejectsForeignSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	alice := &scriptedAgent{answer: "saved"}
	_, err := usecase.New(store, alice, pkgLog.NewNop()).ProcessQuery(ctx, queryInput("s1", "T1", "remember my token"))
	require.NoError(t, err)

	mallory := &scriptedAgent{answer: "leaked"}
	in := queryInput("s1", "T2", "what did alice ask?")
	in.User = "mallory"
	in.Identity = session.Identity{Login: "mallory", ID: 9}
	_, err = usecase.New(store, mallory, pkgLog.NewNop()).ProcessQuery(ctx, in)
	require.ErrorIs(t, err, conversation.ErrSessionForbidden)

	assert.Empty(t, mallory.queries, "agent must not run on a foreign session")

	turns, err := store.ListTurns(ctx, repo.ListTurnsOptions{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "remember my token", turns[0].UserQuery)

	s, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
}

func TestProcessQueryStoreTimeout(t *testing.T) {
	db, err := sqliteconn.Open(filepath.Join(t.TempDir(), "conv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := sqlite.New(db, pkgLog.NewNop(), repo.Config{QueryTimeout: 100 * time.Millisecond})
	require.NoError(t, store.EnsureSchema(context.Background()))

	db.SetMaxOpenConns(1)
	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	agent := &scriptedAgent{answer: "a"}
	start := time.Now()
	_, err = usecase.New(store, agent, pkgLog.NewNop()).ProcessQuery(context.Background(), queryInput("s1", "t", "q"))
	require.ErrorIs(t, err, conversation.ErrPersistenceFailed)
	assert.ErrorIs(t, err, repo.ErrTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Empty(t, agent.queries)
}

func TestSessionReadsCheckOwner(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uc := usecase.New(store, &scriptedAgent{answer: "a"}, pkgLog.NewNop())

	for _, ts := range []string{"t1", "t2", "t3"} {
		_, err := uc.ProcessQuery(ctx, queryInput("s1", ts, "q"))
		require.NoError(t, err)
	}

	list, err := uc.ListTurns(ctx, conversation.ListTurnsInput{SessionID: "s1", Login: "alice", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Turns, 2)
	assert.Equal(t, 2, list.Limit)

	detail, err := uc.DetailSession(ctx, conversation.DetailSessionInput{SessionID: "s1", Login: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 3, detail.Turns)
	assert.Equal(t, "alice", detail.Session.Username)

	_, err = uc.ListTurns(ctx, conversation.ListTurnsInput{SessionID: "s1", Login: "mallory"})
	assert.ErrorIs(t, err, conversation.ErrSessionForbidden)

	_, err = uc.DetailSession(ctx, conversation.DetailSessionInput{SessionID: "nope", Login: "alice"})
	assert.ErrorIs(t, err, conversation.ErrSessionNotFound)
}

func TestReplayEmpty(t *testing.T) {
	uc := usecase.New(newStore(t), nil, pkgLog.NewNop())

	out, err := uc.Replay(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = uc.Replay(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, out)
}
