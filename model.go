package postcrew

import (
	"context"
	"iter"

	"github.com/postcrew/postcrew/tools"
)

// Generator is a lazily evaluated sequence of values and errors.
type Generator[T, E any] = iter.Seq2[T, E]

// ModelRequest is a chat-style request to the model provider.
type ModelRequest struct {
	Model       string        `json:"model"`
	Instruction *Message      `json:"instruction,omitempty"`
	Messages    []*Message    `json:"messages"`
	Tools       []*tools.Tool `json:"tools,omitempty"`
}

// ModelResponse is a single message produced by the provider.
type ModelResponse struct {
	Message *Message `json:"message"`
}

// ModelProvider is the model-serving collaborator.
type ModelProvider interface {
	// Generate executes the request and returns one completed message.
	Generate(context.Context, *ModelRequest) (*ModelResponse, error)
	// NewStreaming executes the request and yields incomplete chunks, closing
	// with one completed message that accumulates the whole turn.
	NewStreaming(context.Context, *ModelRequest) Generator[*ModelResponse, error]
}
