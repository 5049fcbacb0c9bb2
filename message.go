package postcrew

import (
	"strings"

	"github.com/google/uuid"
)

// Role indicates the author type of a message.
type Role string

const (
	// RoleUser indicates the message is from the user.
	RoleUser Role = "user"
	// RoleSystem indicates the message is a system instruction.
	RoleSystem Role = "system"
	// RoleAssistant indicates the message is from the model.
	RoleAssistant Role = "assistant"
	// RoleTool indicates the message carries tool calls and their results.
	RoleTool Role = "tool"
)

// Status indicates whether a message is a partial chunk or a closed turn.
type Status string

const (
	// StatusIncomplete marks a streaming chunk.
	StatusIncomplete Status = "incomplete"
	// StatusCompleted marks a message that closes a model turn.
	StatusCompleted Status = "completed"
)

// Part is a piece of message content.
type Part interface {
	isPart()
}

// TextPart is plain text content.
type TextPart struct {
	Text string `json:"text"`
}

// ToolPart is a tool call requested by the model, together with its result once executed.
type ToolPart struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Request  string `json:"request"`
	Response string `json:"response,omitempty"`
}

func (TextPart) isPart() {}
func (ToolPart) isPart() {}

// TokenUsage reports token accounting for a model turn.
type TokenUsage struct {
	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`
	TotalTokens  int64 `json:"totalTokens"`
}

// Source is a web page the model used to ground its answer.
type Source struct {
	Title  string `json:"title"`
	URI    string `json:"uri"`
	Domain string `json:"domain,omitempty"`
}

// Grounding holds the search metadata returned alongside a grounded answer.
type Grounding struct {
	Queries []string `json:"queries,omitempty"`
	Sources []Source `json:"sources,omitempty"`
}

// Titles returns the non-empty source titles in order.
func (g *Grounding) Titles() []string {
	if g == nil {
		return nil
	}
	titles := make([]string, 0, len(g.Sources))
	for _, s := range g.Sources {
		if s.Title != "" {
			titles = append(titles, s.Title)
		}
	}
	return titles
}

// Message is a single event exchanged with the model.
type Message struct {
	ID           string     `json:"id"`
	Role         Role       `json:"role"`
	Author       string     `json:"author,omitempty"`
	InvocationID string     `json:"invocationId,omitempty"`
	Status       Status     `json:"status"`
	Parts        []Part     `json:"parts"`
	FinishReason string     `json:"finishReason,omitempty"`
	TokenUsage   TokenUsage `json:"tokenUsage"`
	Grounding    *Grounding `json:"grounding,omitempty"`
}

// NewMessage creates an empty message with a fresh id.
func NewMessage(role Role) *Message {
	return &Message{
		ID:     uuid.NewString(),
		Role:   role,
		Status: StatusCompleted,
	}
}

// UserMessage creates a completed user message with the given text.
func UserMessage(text string) *Message {
	m := NewMessage(RoleUser)
	m.Parts = []Part{TextPart{Text: text}}
	return m
}

// SystemMessage creates a system instruction message with the given text.
func SystemMessage(text string) *Message {
	m := NewMessage(RoleSystem)
	m.Parts = []Part{TextPart{Text: text}}
	return m
}

// AssistantMessage creates a completed assistant message with the given text.
func AssistantMessage(text string) *Message {
	m := NewMessage(RoleAssistant)
	m.Parts = []Part{TextPart{Text: text}}
	return m
}

// Text concatenates all text parts of the message.
func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	var buf strings.Builder
	for _, part := range m.Parts {
		if v, ok := part.(TextPart); ok {
			buf.WriteString(v.Text)
		}
	}
	return buf.String()
}

// ToolParts returns the tool calls carried by the message.
func (m *Message) ToolParts() []ToolPart {
	var parts []ToolPart
	for _, part := range m.Parts {
		if v, ok := part.(ToolPart); ok {
			parts = append(parts, v)
		}
	}
	return parts
}

// IsFinal reports whether the message is part of the final response of a run.
func (m *Message) IsFinal() bool {
	return m != nil && m.Role == RoleAssistant && m.Status == StatusCompleted
}
