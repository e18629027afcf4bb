package orchestrator

import (
	"time"

	"github-agent/internal/agent"
	pkgLog "github-agent/pkg/log"
)

type Orchestrator struct {
	llm      Generator
	registry *agent.ToolRegistry
	l        pkgLog.Logger
	maxSteps int
	now      func() time.Time
}

// New creates the reasoning loop. maxSteps <= 0 uses DefaultMaxAgentSteps.
func New(llm Generator, registry *agent.ToolRegistry, l pkgLog.Logger, maxSteps int) *Orchestrator {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxAgentSteps
	}
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		l:        l,
		maxSteps: maxSteps,
		now:      time.Now,
	}
}
