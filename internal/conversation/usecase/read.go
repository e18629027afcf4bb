package usecase

import (
	"context"

	"github-agent/internal/conversation"
	repo "github-agent/internal/conversation/repository"
)

// ListTurns returns the turn log of a session owned by input.Login.
func (uc *implUseCase) ListTurns(ctx context.Context, input conversation.ListTurnsInput) (conversation.ListTurnsOutput, error) {
	if _, err := uc.ownedSession(ctx, input.SessionID, input.Login); err != nil {
		return conversation.ListTurnsOutput{}, err
	}

	opt := repo.ListTurnsOptions{SessionID: input.SessionID, Limit: input.Limit}
	turns, err := uc.repo.ListTurns(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListTurns ListTurns: %v", err)
		return conversation.ListTurnsOutput{}, err
	}

	return conversation.ListTurnsOutput{
		Turns: turns,
		Limit: opt.EffectiveLimit(),
	}, nil
}

// DetailSession returns session metadata and its number of turns.
func (uc *implUseCase) DetailSession(ctx context.Context, input conversation.DetailSessionInput) (conversation.DetailSessionOutput, error) {
	s, err := uc.ownedSession(ctx, input.SessionID, input.Login)
	if err != nil {
		return conversation.DetailSessionOutput{}, err
	}

	h, err := uc.repo.GetHistory(ctx, input.SessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.DetailSession GetHistory: %v", err)
		return conversation.DetailSessionOutput{}, err
	}

	return conversation.DetailSessionOutput{
		Session: s,
		Turns:   len(h),
	}, nil
}

func (uc *implUseCase) ownedSession(ctx context.Context, sessionID, login string) (conversation.Session, error) {
	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ownedSession GetSession: %v", err)
		return conversation.Session{}, err
	}
	if s.SessionID == "" {
		return conversation.Session{}, conversation.ErrSessionNotFound
	}
	if s.Username != login {
		return conversation.Session{}, conversation.ErrSessionForbidden
	}
	return s, nil
}
