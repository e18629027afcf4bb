package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-agent/internal/conversation"
	"github-agent/internal/middleware"
	"github-agent/internal/session"
	"github-agent/pkg/github"
	pkgLog "github-agent/pkg/log"
)

type stubVerifier struct{}

func (stubVerifier) GetAuthenticatedUser(ctx context.Context, token string) (github.User, error) {
	if token != "gho_valid" {
		return github.User{}, &github.Error{Kind: github.KindUnauthorized, StatusCode: 401}
	}
	return github.User{Login: "alice", ID: 42}, nil
}

type stubUseCase struct {
	lastQuery conversation.QueryInput
	queryErr  error
	sessions  map[string]string // session_id -> owner
}

func (s *stubUseCase) ProcessQuery(ctx context.Context, in conversation.QueryInput) (conversation.QueryOutput, error) {
	s.lastQuery = in
	if s.queryErr != nil {
		return conversation.QueryOutput{}, s.queryErr
	}
	return conversation.QueryOutput{
		AssistantOutput: conversation.AssistantOutput{
			ToolsResponses: map[string]session.Record{
				"tool_0": {ActionName: "list_repos", Input: map[string]any{}, Output: "Found 1 repositories"},
			},
			FinalAssistantResponse: "done",
		},
		Timestamp: "2024-01-01T10:00:00Z",
		Status:    conversation.StatusSuccess,
		ConvID:    "c1",
		SessionID: in.SessionID,
	}, nil
}

func (s *stubUseCase) owned(id, login string) error {
	owner, ok := s.sessions[id]
	if !ok {
		return conversation.ErrSessionNotFound
	}
	if owner != login {
		return conversation.ErrSessionForbidden
	}
	return nil
}

func (s *stubUseCase) ListTurns(ctx context.Context, in conversation.ListTurnsInput) (conversation.ListTurnsOutput, error) {
	if err := s.owned(in.SessionID, in.Login); err != nil {
		return conversation.ListTurnsOutput{}, err
	}
	return conversation.ListTurnsOutput{Turns: []conversation.Turn{{ConvID: "c1", SessionID: in.SessionID, Timestamp: "t1"}}, Limit: 50}, nil
}

func (s *stubUseCase) DetailSession(ctx context.Context, in conversation.DetailSessionInput) (conversation.DetailSessionOutput, error) {
	if err := s.owned(in.SessionID, in.Login); err != nil {
		return conversation.DetailSessionOutput{}, err
	}
	return conversation.DetailSessionOutput{Session: conversation.Session{SessionID: in.SessionID, Username: in.Login}, Turns: 1}, nil
}

func (s *stubUseCase) Replay(ctx context.Context, sessionID string) (string, error) { return "", nil }

func newTestRouter(uc conversation.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(pkgLog.NewNop(), middleware.Config{Verifier: stubVerifier{}})
	h := New(pkgLog.NewNop(), uc)
	RegisterAgentRoutes(r.Group("/agent"), h, mw)
	RegisterSessionRoutes(r.Group("/api/v1"), h, mw)
	return r
}

func send(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuery(t *testing.T) {
	uc := &stubUseCase{}
	r := newTestRouter(uc)

	w := send(r, http.MethodPost, "/agent/query", `{"user":"alice","timestamp":"2024-01-01T10:00:00Z","query":"hi","session_id":"s1"}`, "gho_valid")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp queryResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "c1", resp.ConvID)
	require.NotNil(t, resp.SessionID)
	assert.Equal(t, "s1", *resp.SessionID)
	assert.Equal(t, "list_repos", resp.AssistantOutput.ToolsResponses["tool_0"].ToolName)

	assert.Equal(t, "alice", uc.lastQuery.Identity.Login)
	assert.Equal(t, "gho_valid", uc.lastQuery.Credential.Token())
}

func TestQueryWithoutSessionReportsNull(t *testing.T) {
	r := newTestRouter(&stubUseCase{})

	w := send(r, http.MethodPost, "/agent/query", `{"user":"alice","timestamp":"t"}`, "gho_valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":null`)
}

func TestQueryErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		token  string
		err    error
		status int
	}{
		{"no token", `{"user":"a","timestamp":"t"}`, "", nil, http.StatusUnauthorized},
		{"bad token", `{"user":"a","timestamp":"t"}`, "gho_expired", nil, http.StatusUnauthorized},
		{"missing user", `{"timestamp":"t"}`, "gho_valid", nil, http.StatusUnprocessableEntity},
		{"blank user", `{"user":"   ","timestamp":"t"}`, "gho_valid", nil, http.StatusUnprocessableEntity},
		{"blank timestamp", `{"user":"a","timestamp":" \t"}`, "gho_valid", nil, http.StatusUnprocessableEntity},
		{"foreign session", `{"user":"a","timestamp":"t","session_id":"theirs"}`, "gho_valid",
			conversation.ErrSessionForbidden, http.StatusForbidden},
		{"store failure", `{"user":"a","timestamp":"t","session_id":"s"}`, "gho_valid",
			fmt.Errorf("%w: boom", conversation.ErrPersistenceFailed), http.StatusInternalServerError},
		{"agent missing", `{"user":"a","timestamp":"t"}`, "gho_valid", conversation.ErrAgentUnavailable, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubUseCase{queryErr: tc.err})
			w := send(r, http.MethodPost, "/agent/query", tc.body, tc.token)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestSessionRoutes(t *testing.T) {
	r := newTestRouter(&stubUseCase{sessions: map[string]string{"mine": "alice", "theirs": "bob"}})

	w := send(r, http.MethodGet, "/api/v1/sessions/mine/turns?limit=10", "", "gho_valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"conv_id":"c1"`)

	w = send(r, http.MethodGet, "/api/v1/sessions/mine", "", "gho_valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	assert.Equal(t, http.StatusForbidden, send(r, http.MethodGet, "/api/v1/sessions/theirs", "", "gho_valid").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/sessions/none/turns", "", "gho_valid").Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/api/v1/sessions/mine/turns?limit=1000", "", "gho_valid").Code)
}
