package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github-agent/internal/conversation"
	"github-agent/internal/session"
)

func TestRenderTurns(t *testing.T) {
	var buf bytes.Buffer
	renderTurns(&buf, []conversation.Turn{
		{
			ConvID:    "c1",
			Timestamp: "2024-01-01T10:00:00Z",
			UserQuery: "list my\nrepos",
			AssistantOutput: conversation.AssistantOutput{
				ToolsResponses:         map[string]session.Record{"tool_0": {ActionName: "list_repos"}},
				FinalAssistantResponse: strings.Repeat("x", 100),
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "c1")
	assert.Contains(t, out, "list my repos")
	assert.NotContains(t, out, strings.Repeat("x", 100))
}

func TestRenderSession(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	renderSession(&buf, conversation.Session{SessionID: "s1", Username: "alice", CreatedAt: ts, UpdatedAt: ts}, 3)

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "2024-01-01T10:00:00Z")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "a b", clip(" a \n b "))
	assert.Equal(t, cellWidth, len([]rune(clip(strings.Repeat("é", 200)))))
}

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["session"] && names["turns"] && names["replay"])
}
