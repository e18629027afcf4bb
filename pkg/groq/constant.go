package groq

import "time"

const (
	// DefaultModel is the default Groq-hosted model
	DefaultModel = "openai/gpt-oss-120b"

	// DefaultBaseURL is the OpenAI-compatible Groq endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
