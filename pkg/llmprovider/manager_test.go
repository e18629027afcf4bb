package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github-agent/config"
	"github-agent/pkg/groq"
	"github-agent/pkg/log"
)

// scriptedProvider answers with errs in order, then with a text response.
type scriptedProvider struct {
	name  string
	errs  []error
	calls int
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	p.calls++
	if p.calls <= len(p.errs) {
		return nil, &ProviderError{Provider: p.name, Err: p.errs[p.calls-1]}
	}
	return &Response{
		Content:      TextMessage(RoleAssistant, "from "+p.name),
		ProviderName: p.name,
		Usage:        &Usage{InputTokens: 10, OutputTokens: 3, TotalTokens: 13},
	}, nil
}

func (p *scriptedProvider) Name() string  { return p.name }
func (p *scriptedProvider) Model() string { return p.name + "-model" }

func apiErr(status int) error {
	return &groq.APIError{StatusCode: status, Body: http.StatusText(status)}
}

func newTestManager(cfg Config, providers ...Provider) (*Manager, *observer.ObservedLogs, *[]time.Duration) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewManager(providers, cfg, log.New(core))
	var delays []time.Duration
	m.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return m, logs, &delays
}

func request() *Request {
	return &Request{Messages: []Message{TextMessage(RoleUser, "hi")}}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", apiErr(http.StatusTooManyRequests), true},
		{"server error", apiErr(http.StatusInternalServerError), true},
		{"bad gateway wrapped", &ProviderError{Provider: "groq", Err: apiErr(http.StatusBadGateway)}, true},
		{"bad request", apiErr(http.StatusBadRequest), false},
		{"unauthorized wrapped", &ProviderError{Provider: "groq", Err: apiErr(http.StatusUnauthorized)}, false},
		{"not found", apiErr(http.StatusNotFound), false},
		{"transport", errors.New("groq: API call failed: connection reset"), true},
		{"deadline", fmt.Errorf("groq: API call failed: %w", context.DeadlineExceeded), false},
		{"canceled", context.Canceled, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Retryable(tc.err))
		})
	}
}

func TestGenerateContentFirstProviderWins(t *testing.T) {
	first := &scriptedProvider{name: "groq"}
	second := &scriptedProvider{name: "openai"}
	m, logs, _ := newTestManager(Config{FallbackEnabled: true, RetryAttempts: 3}, first, second)

	ctx := log.WithCaller(context.Background(), "alice", "s1")
	resp, err := m.GenerateContent(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, "from groq", resp.Content.Text())
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)

	infos := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "provider=groq")
	assert.Contains(t, infos[0].Message, "input_tokens=10")
	assert.Equal(t, "alice", infos[0].ContextMap()["login"])
	assert.Equal(t, "s1", infos[0].ContextMap()["session_id"])
}

func TestGenerateContentRetriesRateLimit(t *testing.T) {
	p := &scriptedProvider{name: "groq", errs: []error{apiErr(http.StatusTooManyRequests), apiErr(http.StatusServiceUnavailable)}}
	m, _, delays := newTestManager(Config{RetryAttempts: 3, RetryDelay: time.Second}, p)

	resp, err := m.GenerateContent(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "groq", resp.ProviderName)
	assert.Equal(t, 3, p.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *delays)
}

func TestGenerateContentClientErrorFailsFast(t *testing.T) {
	first := &scriptedProvider{name: "groq", errs: []error{apiErr(http.StatusUnauthorized)}}
	second := &scriptedProvider{name: "openai"}
	m, logs, delays := newTestManager(Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Second}, first, second)

	ctx := log.WithCaller(context.Background(), "alice", "s1")
	resp, err := m.GenerateContent(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.ProviderName)
	assert.Equal(t, 1, first.calls, "a 401 must not be retried")
	assert.Empty(t, *delays)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "status=401")
	assert.Equal(t, "alice", warns[0].ContextMap()["login"])
}

func TestGenerateContentAllProvidersFail(t *testing.T) {
	first := &scriptedProvider{name: "groq", errs: []error{apiErr(500), apiErr(502)}}
	second := &scriptedProvider{name: "openai", errs: []error{apiErr(http.StatusBadRequest)}}
	m, _, _ := newTestManager(Config{FallbackEnabled: true, RetryAttempts: 2}, first, second)

	_, err := m.GenerateContent(context.Background(), request())
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 2, first.calls)
	assert.Equal(t, 1, second.calls)

	var last *groq.APIError
	require.ErrorAs(t, err, &last)
	assert.Equal(t, http.StatusBadRequest, last.StatusCode)
}

func TestGenerateContentFallbackDisabled(t *testing.T) {
	first := &scriptedProvider{name: "groq", errs: []error{apiErr(http.StatusForbidden)}}
	second := &scriptedProvider{name: "openai"}
	m, _, _ := newTestManager(Config{RetryAttempts: 3}, first, second)

	_, err := m.GenerateContent(context.Background(), request())
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 0, second.calls)
}

func TestGenerateContentNoProviders(t *testing.T) {
	m, _, _ := newTestManager(Config{})
	_, err := m.GenerateContent(context.Background(), request())
	assert.ErrorIs(t, err, ErrNoProvidersConfigured)
}

// blockingProvider waits for ctx to end.
type blockingProvider struct{ calls atomic.Int32 }

func (p *blockingProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	p.calls.Add(1)
	<-ctx.Done()
	return nil, &ProviderError{Provider: "slow", Err: fmt.Errorf("groq: API call failed: %w", ctx.Err())}
}
func (p *blockingProvider) Name() string  { return "slow" }
func (p *blockingProvider) Model() string { return "slow-model" }

func TestGenerateContentMaxTotalTimeout(t *testing.T) {
	slow := &blockingProvider{}
	next := &scriptedProvider{name: "openai"}
	m := NewManager([]Provider{slow, next}, Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
		MaxTotalTimeout: 50 * time.Millisecond,
	}, log.NewNop())

	start := time.Now()
	_, err := m.GenerateContent(context.Background(), request())
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), slow.calls.Load(), "deadline errors are not retried")
	assert.Equal(t, 0, next.calls)
}

func TestGenerateContentThroughGroqAdapter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}],"usage":{"prompt_tokens":4,"completion_tokens":1,"total_tokens":5}}`))
	}))
	defer srv.Close()

	client, err := groq.New(groq.Config{APIKey: "k", Model: "m", BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	m, _, _ := newTestManager(Config{RetryAttempts: 2}, NewGroqAdapter("groq", client))
	resp, err := m.GenerateContent(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Content.Text())
	assert.Equal(t, int32(2), hits.Load())
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.LLMConfig{
		FallbackEnabled: true,
		RetryAttempts:   4,
		RetryDelay:      "250ms",
		MaxTotalTimeout: "45s",
	})
	assert.Equal(t, Config{FallbackEnabled: true, RetryAttempts: 4, RetryDelay: 250 * time.Millisecond, MaxTotalTimeout: 45 * time.Second}, cfg)

	defaults := ConfigFrom(config.LLMConfig{RetryDelay: "soon", MaxTotalTimeout: "-1s"})
	assert.Equal(t, DefaultRetryDelay, defaults.RetryDelay)
	assert.Equal(t, DefaultMaxTotalTimeout, defaults.MaxTotalTimeout)
}

func TestMessageHelpers(t *testing.T) {
	msg := Message{Role: RoleAssistant, Parts: []Part{
		{Text: "thinking"},
		{FunctionCall: &FunctionCall{ID: "c1", Name: "list_repos"}},
		{Text: "more"},
	}}
	assert.Equal(t, "thinking\nmore", msg.Text())

	calls := msg.FunctionCalls()
	require.Len(t, calls, 1)

	res := ToolResult(calls[0], "ok")
	assert.Equal(t, RoleTool, res.Role)
	assert.Equal(t, &FunctionResponse{ID: "c1", Name: "list_repos", Response: "ok"}, res.Parts[0].FunctionResponse)
}
