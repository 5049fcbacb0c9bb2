package postcrew

import (
	"github.com/google/uuid"
	"github.com/postcrew/postcrew/tools"
)

// Invocation carries everything one gateway call needs to reach the model.
type Invocation struct {
	ID          string
	Agent       Agent
	Session     Session
	Model       string
	Instruction *Message
	Message     *Message
	Tools       []*tools.Tool
	Streamable  bool
}

// NewInvocationID returns a fresh invocation id.
func NewInvocationID() string {
	return uuid.NewString()
}
