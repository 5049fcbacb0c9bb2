package tools

import (
	"context"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrNotCallable is returned when a built-in capability is invoked locally.
var ErrNotCallable = errors.New("tool is executed by the model service")

// Kind distinguishes locally executed functions from service capabilities.
type Kind string

const (
	// KindFunction is a function declared to the model and executed locally.
	KindFunction Kind = "function"
	// KindGoogleSearch grants the model the service-side Google Search capability.
	KindGoogleSearch Kind = "google_search"
)

// Tool is a capability granted to an agent.
type Tool struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Kind         Kind                    `json:"kind"`
	InputSchema  *jsonschema.Schema      `json:"inputSchema,omitempty"`
	OutputSchema *jsonschema.Schema      `json:"outputSchema,omitempty"`
	handler      Handler[string, string]
}

// NewTool creates a function tool backed by a string handler.
func NewTool(name string, description string, handler Handler[string, string], opts ...Option) *Tool {
	t := &Tool{
		Name:        name,
		Description: description,
		Kind:        KindFunction,
		handler:     handler,
	}
	for _, apply := range opts {
		apply(t)
	}
	return t
}

// NewFunc creates a function tool whose schemas are inferred from I and O.
func NewFunc[I, O any](name string, description string, handler Handler[I, O]) (*Tool, error) {
	inputSchema, err := jsonschema.For[I](nil)
	if err != nil {
		return nil, err
	}
	outputSchema, err := jsonschema.For[O](nil)
	if err != nil {
		return nil, err
	}
	return NewTool(name, description, JSONAdapter(handler),
		WithInputSchema(inputSchema),
		WithOutputSchema(outputSchema),
	), nil
}

// GoogleSearch grants the model web search; queries run inside the model service.
func GoogleSearch() *Tool {
	return &Tool{
		Name:        "google_search",
		Description: "Searches the web with Google and grounds the answer on the results.",
		Kind:        KindGoogleSearch,
	}
}

// Clone returns a copy of the tool that shares nothing mutable with t.
func (t *Tool) Clone() *Tool {
	if t == nil {
		return nil
	}
	c := *t
	c.InputSchema = t.InputSchema.CloneSchemas()
	c.OutputSchema = t.OutputSchema.CloneSchemas()
	return &c
}

// Builtin reports whether the tool is executed by the model service.
func (t *Tool) Builtin() bool {
	return t.Kind != KindFunction
}

// Handle executes a function tool with JSON arguments.
func (t *Tool) Handle(ctx context.Context, input string) (string, error) {
	if t.Builtin() || t.handler == nil {
		return "", ErrNotCallable
	}
	return t.handler.Handle(ctx, input)
}
