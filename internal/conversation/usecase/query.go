package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
	"github-agent/internal/session"
)

const currentQueryHeader = "[Current Query]\n"

// ProcessQuery runs one agent turn for an already verified caller and, when
// the query belongs to a session, persists the turn.
func (uc *implUseCase) ProcessQuery(ctx context.Context, input conversation.QueryInput) (conversation.QueryOutput, error) {
	if uc.agent == nil {
		return conversation.QueryOutput{}, conversation.ErrAgentUnavailable
	}

	query := input.Query
	if query == "" {
		query = fmt.Sprintf("Hello from %s", input.User)
	}

	if input.SessionID != "" {
		if err := uc.repo.CreateSession(ctx, repo.CreateSessionOptions{
			SessionID: input.SessionID,
			Username:  input.Identity.Login,
		}); err != nil {
			uc.l.Errorf(ctx, "uc.ProcessQuery CreateSession: %v", err)
			return conversation.QueryOutput{}, fmt.Errorf("%w: %w", conversation.ErrPersistenceFailed, err)
		}
		// CreateSession keeps an existing row, so the owner may be someone else.
		if _, err := uc.ownedSession(ctx, input.SessionID, input.Identity.Login); err != nil {
			if errors.Is(err, conversation.ErrSessionForbidden) {
				uc.l.Warnf(ctx, "uc.ProcessQuery: user=%s denied session=%q", input.Identity.Login, input.SessionID)
				return conversation.QueryOutput{}, err
			}
			return conversation.QueryOutput{}, fmt.Errorf("%w: %w", conversation.ErrPersistenceFailed, err)
		}
	}

	sc := session.New(input.Identity, input.SessionID, input.Credential, input.Timestamp)

	history, err := uc.Replay(ctx, input.SessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ProcessQuery Replay: %v", err)
		return conversation.QueryOutput{}, fmt.Errorf("%w: %w", conversation.ErrPersistenceFailed, err)
	}

	answer, err := uc.agent.Run(ctx, sc, history+currentQueryHeader+query)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ProcessQuery agent.Run: %v", err)
		return conversation.QueryOutput{}, fmt.Errorf("%w: %v", conversation.ErrAgentFailed, err)
	}

	output := conversation.AssistantOutput{
		ToolsResponses:         sc.Trail().ToolResponses(),
		FinalAssistantResponse: answer,
	}

	convID := uuid.NewString()
	if sc.Persistent() {
		turn, err := uc.repo.SaveTurn(ctx, repo.SaveTurnOptions{
			ConvID:          convID,
			SessionID:       input.SessionID,
			Timestamp:       input.Timestamp,
			UserQuery:       query,
			AssistantOutput: output,
		})
		if err != nil {
			uc.l.Errorf(ctx, "uc.ProcessQuery SaveTurn: %v", err)
			return conversation.QueryOutput{}, fmt.Errorf("%w: %w", conversation.ErrPersistenceFailed, err)
		}
		convID = turn.ConvID
	}

	uc.l.Infof(ctx, "uc.ProcessQuery: user=%s session=%q actions=%d conv_id=%s",
		input.Identity.Login, input.SessionID, sc.Trail().Len(), convID)

	return conversation.QueryOutput{
		AssistantOutput: output,
		Timestamp:       uc.now().Format(time.RFC3339),
		Status:          conversation.StatusSuccess,
		ConvID:          convID,
		SessionID:       input.SessionID,
	}, nil
}
