package llmprovider

import (
	"context"
	"strings"
)

// Provider is one chat-completions backend with tool calling.
type Provider interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Name() string
	Model() string
}

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Request is one turn of the agent loop: the system prompt, the running
// transcript and the tool catalog.
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Tools             []Tool
	Temperature       float64
	MaxTokens         int
}

type Message struct {
	Role  string
	Parts []Part
}

// Part holds exactly one of Text, FunctionCall or FunctionResponse.
type Part struct {
	Text             string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}

// ToolResult builds the message answering call with result.
func ToolResult(call *FunctionCall, result any) Message {
	return Message{
		Role: RoleTool,
		Parts: []Part{{FunctionResponse: &FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: result,
		}}},
	}
}

// FunctionCalls returns the tool calls requested in m, in order.
func (m Message) FunctionCalls() []*FunctionCall {
	var calls []*FunctionCall
	for _, p := range m.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Text joins the non-empty text parts of m with newlines.
func (m Message) Text() string {
	var texts []string
	for _, p := range m.Parts {
		if p.FunctionCall == nil && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// Tool declares one callable action. Parameters is a JSON schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// FunctionCall is a tool invocation chosen by the model. ID is the
// provider-assigned call id and is echoed back on the response.
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]any
}

type FunctionResponse struct {
	ID       string
	Name     string
	Response any
}

type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
