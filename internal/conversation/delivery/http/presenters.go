package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github-agent/internal/conversation"
	"github-agent/internal/session"
	pkgErrors "github-agent/pkg/errors"
)

// --- Request DTOs ---

type queryReq struct {
	User      string `json:"user"       binding:"required"`
	Timestamp string `json:"timestamp"  binding:"required"`
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// validate rejects values that pass the required binding but carry no text.
func (r queryReq) validate() error {
	if strings.TrimSpace(r.User) == "" {
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "user must not be blank")
	}
	if strings.TrimSpace(r.Timestamp) == "" {
		return pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "timestamp must not be blank")
	}
	return nil
}

func (r queryReq) toInput(identity session.Identity, cred session.Credential) conversation.QueryInput {
	return conversation.QueryInput{
		User:       r.User,
		Timestamp:  r.Timestamp,
		Query:      r.Query,
		SessionID:  r.SessionID,
		Identity:   identity,
		Credential: cred,
	}
}

// ---

const maxTurnsLimit = 200

type listTurnsReq struct {
	SessionID string `form:"-"` // populated from URI param
	Limit     int    `form:"limit"`
}

func (r listTurnsReq) validate() error {
	if r.SessionID == "" {
		return errors.New("session_id is required")
	}
	if r.Limit < 0 || r.Limit > maxTurnsLimit {
		return errors.New("limit must not exceed 200")
	}
	return nil
}

func (r listTurnsReq) toInput(login string) conversation.ListTurnsInput {
	return conversation.ListTurnsInput{
		SessionID: r.SessionID,
		Login:     login,
		Limit:     r.Limit,
	}
}

// --- Response DTOs ---

type recordResp struct {
	ToolName string         `json:"tool_name"`
	Input    map[string]any `json:"input"`
	Output   string         `json:"output"`
}

type assistantOutputResp struct {
	ToolsResponses         map[string]recordResp `json:"tools_responses"`
	FinalAssistantResponse string                `json:"final_assistant_response"`
}

func newAssistantOutputResp(out conversation.AssistantOutput) assistantOutputResp {
	tools := make(map[string]recordResp, len(out.ToolsResponses))
	for k, rec := range out.ToolsResponses {
		tools[k] = recordResp{ToolName: rec.ActionName, Input: rec.Input, Output: rec.Output}
	}
	return assistantOutputResp{
		ToolsResponses:         tools,
		FinalAssistantResponse: out.FinalAssistantResponse,
	}
}

// queryResp is written unwrapped: clients of the agent endpoint read these
// fields at the top level.
type queryResp struct {
	AssistantOutput assistantOutputResp `json:"assistant_output"`
	Timestamp       string              `json:"timestamp"`
	Status          string              `json:"status"`
	ConvID          string              `json:"conv_id"`
	SessionID       *string             `json:"session_id"`
}

func (h *handler) newQueryResp(out conversation.QueryOutput) queryResp {
	resp := queryResp{
		AssistantOutput: newAssistantOutputResp(out.AssistantOutput),
		Timestamp:       out.Timestamp,
		Status:          out.Status,
		ConvID:          out.ConvID,
	}
	if out.SessionID != "" {
		sid := out.SessionID
		resp.SessionID = &sid
	}
	return resp
}

type turnResp struct {
	ConvID          string              `json:"conv_id"`
	SessionID       string              `json:"session_id"`
	Timestamp       string              `json:"timestamp"`
	UserQuery       string              `json:"user_query"`
	AssistantOutput assistantOutputResp `json:"assistant_output"`
}

type listTurnsResp struct {
	Turns []turnResp `json:"turns"`
	Limit int        `json:"limit"`
}

func (h *handler) newListTurnsResp(out conversation.ListTurnsOutput) listTurnsResp {
	turns := make([]turnResp, len(out.Turns))
	for i, t := range out.Turns {
		turns[i] = turnResp{
			ConvID:          t.ConvID,
			SessionID:       t.SessionID,
			Timestamp:       t.Timestamp,
			UserQuery:       t.UserQuery,
			AssistantOutput: newAssistantOutputResp(t.AssistantOutput),
		}
	}
	return listTurnsResp{Turns: turns, Limit: out.Limit}
}

type sessionResp struct {
	SessionID string    `json:"session_id"`
	Username  string    `json:"username"`
	Turns     int       `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *handler) newSessionResp(out conversation.DetailSessionOutput) sessionResp {
	return sessionResp{
		SessionID: out.Session.SessionID,
		Username:  out.Session.Username,
		Turns:     out.Turns,
		CreatedAt: out.Session.CreatedAt,
		UpdatedAt: out.Session.UpdatedAt,
	}
}
