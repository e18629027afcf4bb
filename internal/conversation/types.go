package conversation

import (
	"time"

	"github-agent/internal/session"
)

// StatusSuccess is the status reported for a completed turn.
const StatusSuccess = "success"

// --- Domain Model ---

// AssistantOutput is the result of one agent run: every action record of the
// turn keyed tool_0, tool_1, ... plus the final answer.
type AssistantOutput struct {
	ToolsResponses         map[string]session.Record `json:"tools_responses"`
	FinalAssistantResponse string                    `json:"final_assistant_response"`
}

// Turn is one persisted row of the turn log. Immutable once written.
type Turn struct {
	ConvID          string          `json:"conv_id"`
	SessionID       string          `json:"session_id"`
	Timestamp       string          `json:"timestamp"`
	UserQuery       string          `json:"user_query"`
	AssistantOutput AssistantOutput `json:"assistant_output"`
}

// HistoryEntry is the turn summary merged into a session's history map.
type HistoryEntry struct {
	Timestamp       string          `json:"timestamp"`
	UserQuery       string          `json:"user_query"`
	AssistantOutput AssistantOutput `json:"assistant_output"`
}

// History maps conv_id to its summary. It has no inherent order.
type History map[string]HistoryEntry

// Session is a session row without its history.
type Session struct {
	SessionID string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// --- UseCase Inputs ---

// QueryInput is one inbound agent query from an already verified caller.
type QueryInput struct {
	User       string
	Timestamp  string
	Query      string
	SessionID  string
	Identity   session.Identity
	Credential session.Credential
}

type ListTurnsInput struct {
	SessionID string
	Login     string
	Limit     int
}

type DetailSessionInput struct {
	SessionID string
	Login     string
}

// --- UseCase Outputs ---

type QueryOutput struct {
	AssistantOutput AssistantOutput
	Timestamp       string
	Status          string
	ConvID          string
	SessionID       string
}

type ListTurnsOutput struct {
	Turns []Turn
	Limit int
}

type DetailSessionOutput struct {
	Session Session
	Turns   int
}
