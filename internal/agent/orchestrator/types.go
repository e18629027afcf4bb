package orchestrator

import (
	"context"

	"github-agent/pkg/llmprovider"
)

// Generator is the LLM backend of the loop. *llmprovider.Manager implements it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
