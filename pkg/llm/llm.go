package llm

import "context"

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single completion request.
type Options struct {
	Temperature float32
	// JSONOnly asks the provider for a strict JSON object response
	// (OpenAI-compatible response_format).
	JSONOnly bool
}

// ChatModel is the chat-completion port the domain packages talk to.
// Concrete providers live in subpackages.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}

// System and User are small helpers for the common two-message prompt shape.
func System(content string) Message { return Message{Role: "system", Content: content} }
func User(content string) Message   { return Message{Role: "user", Content: content} }
