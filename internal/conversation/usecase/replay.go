package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github-agent/internal/conversation"
)

const (
	replayHeader = "\n[Previous Conversation]\n"
	replayFooter = "[End of Previous Conversation]\n\n"
)

// Replay renders the session history as prior-turn context, oldest first.
// A session without history renders as the empty string.
func (uc *implUseCase) Replay(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	history, err := uc.repo.GetHistory(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Replay GetHistory: %v", err)
		return "", err
	}
	return renderHistory(history), nil
}

func renderHistory(h conversation.History) string {
	if len(h) == 0 {
		return ""
	}

	ids := make([]string, 0, len(h))
	for id := range h {
		ids = append(ids, id)
	}
	// Timestamps are opaque strings; conv_id only breaks ties.
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := h[ids[i]].Timestamp, h[ids[j]].Timestamp
		if ti != tj {
			return ti < tj
		}
		return ids[i] < ids[j]
	})

	var b strings.Builder
	b.WriteString(replayHeader)
	for _, id := range ids {
		e := h[id]
		b.WriteString("[" + e.Timestamp + "]\n")
		b.WriteString("User: " + e.UserQuery + "\n")
		b.WriteString("Tools_Responses: " + renderTools(e.AssistantOutput) + "\n")
		b.WriteString("Assistant: " + e.AssistantOutput.FinalAssistantResponse + "\n\n")
	}
	b.WriteString(replayFooter)
	return b.String()
}

func renderTools(out conversation.AssistantOutput) string {
	if len(out.ToolsResponses) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(out.ToolsResponses)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
