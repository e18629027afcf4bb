package groq

import "context"

// IGroq defines the interface for an OpenAI-compatible chat-completions client.
// Implementations are safe for concurrent use.
type IGroq interface {
	// GenerateContent sends one chat-completions request
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IGroq, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGroqImpl(cfg), nil
}
