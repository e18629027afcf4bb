package llmprovider

import (
	"context"

	"github-agent/pkg/groq"
)

// GroqAdapter adapts pkg/groq to the Provider interface. The same client
// serves any OpenAI-compatible endpoint, so name is configurable.
type GroqAdapter struct {
	name   string
	client groq.IGroq
}

// NewGroqAdapter creates a new adapter reporting itself as name
func NewGroqAdapter(name string, client groq.IGroq) *GroqAdapter {
	return &GroqAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *GroqAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	groqReq := &groq.Request{
		SystemInstruction: convertToGroqContent(req.SystemInstruction),
		Messages:          convertToGroqContents(req.Messages),
		Tools:             convertToGroqTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, groqReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}

	usage := &Usage{}
	if resp.Usage != nil {
		usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return &Response{
		Content:      convertFromGroqContent(resp.Content),
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage:        usage,
	}, nil
}

// Name returns provider name
func (a *GroqAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *GroqAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers
func convertToGroqContent(msg *Message) *groq.Content {
	if msg == nil {
		return nil
	}
	parts := make([]groq.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = groq.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &groq.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &groq.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &groq.Content{Role: msg.Role, Parts: parts}
}

func convertToGroqContents(msgs []Message) []groq.Content {
	contents := make([]groq.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGroqContent(&msgs[i])
	}
	return contents
}

func convertToGroqTools(tools []Tool) []groq.Tool {
	groqTools := make([]groq.Tool, len(tools))
	for i, t := range tools {
		groqTools[i] = groq.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return groqTools
}

func convertFromGroqContent(content groq.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
	}
	return Message{Role: content.Role, Parts: parts}
}
