package postcrew

import "errors"

var (
	// ErrAgentNameRequired is returned when an agent is built without a name.
	ErrAgentNameRequired = errors.New("agent name is required")
	// ErrInvalidTier is returned for a tier other than fast or capable.
	ErrInvalidTier = errors.New("invalid model tier")
	// ErrInstructionRequired is returned when an agent is built without an instruction.
	ErrInstructionRequired = errors.New("agent instruction is required")
	// ErrTierUnmapped is returned when no model is configured for a tier.
	ErrTierUnmapped = errors.New("no model configured for tier")
	// ErrModelProviderRequired is returned when the runner has no model provider.
	ErrModelProviderRequired = errors.New("model provider is required")
	// ErrAgentRequired is returned when the runner is invoked without an agent.
	ErrAgentRequired = errors.New("agent is required")
	// ErrPromptRequired is returned when the runner is invoked with an empty prompt.
	ErrPromptRequired = errors.New("prompt is required")
	// ErrNoFinalResponse is returned when a model turn ends without a completed message.
	ErrNoFinalResponse = errors.New("stream ended without a final response")
	// ErrMaxIterationsExceeded is returned when tool turns exceed the iteration limit.
	ErrMaxIterationsExceeded = errors.New("maximum iterations exceeded in agent execution")
	// ErrToolNotFound is returned when the model calls a tool the agent was not granted.
	ErrToolNotFound = errors.New("tool not found")
)
