package tools

import "github.com/google/jsonschema-go/jsonschema"

// Option configures a Tool.
type Option func(*Tool)

// WithInputSchema sets the input schema for the tool.
func WithInputSchema(schema *jsonschema.Schema) Option {
	return func(t *Tool) {
		t.InputSchema = schema
	}
}

// WithOutputSchema sets the output schema for the tool.
func WithOutputSchema(schema *jsonschema.Schema) Option {
	return func(t *Tool) {
		t.OutputSchema = schema
	}
}
