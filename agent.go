package postcrew

import (
	"strings"

	"github.com/postcrew/postcrew/tools"
)

// Agent is an immutable role definition: who the model should be and what it may use.
type Agent interface {
	Name() string
	Description() string
	Tier() Tier
	Instruction() string
	Tools() []*tools.Tool
}

// AgentOption is an option for configuring the Agent.
type AgentOption func(*agent)

// WithDescription sets the description for the Agent.
func WithDescription(description string) AgentOption {
	return func(a *agent) {
		a.description = description
	}
}

// WithTier sets the model tier for the Agent. By default, it is TierFast.
func WithTier(tier Tier) AgentOption {
	return func(a *agent) {
		a.tier = tier
	}
}

// WithInstruction sets the system instruction for the Agent.
func WithInstruction(instruction string) AgentOption {
	return func(a *agent) {
		a.instruction = instruction
	}
}

// WithTools grants tools to the Agent.
func WithTools(tools ...*tools.Tool) AgentOption {
	return func(a *agent) {
		a.tools = tools
	}
}

type agent struct {
	name        string
	description string
	tier        Tier
	instruction string
	tools       []*tools.Tool
}

// NewAgent creates a new Agent with the given name and options.
func NewAgent(name string, opts ...AgentOption) (Agent, error) {
	a := &agent{
		name: name,
		tier: TierFast,
	}
	for _, opt := range opts {
		opt(a)
	}
	if strings.TrimSpace(a.name) == "" {
		return nil, ErrAgentNameRequired
	}
	if !a.tier.Valid() {
		return nil, ErrInvalidTier
	}
	if strings.TrimSpace(a.instruction) == "" {
		return nil, ErrInstructionRequired
	}
	a.tools = cloneTools(a.tools)
	return a, nil
}

// MustNewAgent is like NewAgent but panics on an invalid definition.
func MustNewAgent(name string, opts ...AgentOption) Agent {
	a, err := NewAgent(name, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *agent) Name() string {
	return a.name
}

func (a *agent) Description() string {
	return a.description
}

func (a *agent) Tier() Tier {
	return a.tier
}

func (a *agent) Instruction() string {
	return a.instruction
}

// Tools returns a copy of the granted tools.
func (a *agent) Tools() []*tools.Tool {
	return cloneTools(a.tools)
}

func cloneTools(granted []*tools.Tool) []*tools.Tool {
	if len(granted) == 0 {
		return nil
	}
	out := make([]*tools.Tool, 0, len(granted))
	for _, tool := range granted {
		out = append(out, tool.Clone())
	}
	return out
}
