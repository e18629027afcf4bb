package usecase

import (
	"time"

	"github-agent/internal/conversation"
	"github-agent/internal/conversation/repository"
	"github-agent/pkg/log"
)

// implUseCase is the private implementation of conversation.UseCase.
type implUseCase struct {
	repo  repository.Repository
	agent conversation.Agent
	l     log.Logger
	now   func() time.Time
}

// New creates a new conversation UseCase. agent may be nil, in which case
// ProcessQuery reports conversation.ErrAgentUnavailable.
func New(repo repository.Repository, agent conversation.Agent, l log.Logger) conversation.UseCase {
	return &implUseCase{
		repo:  repo,
		agent: agent,
		l:     l,
		now:   time.Now,
	}
}
