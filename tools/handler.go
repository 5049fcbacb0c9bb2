package tools

import (
	"context"
	"encoding/json"
)

// Handler consumes tool arguments and produces a tool result.
type Handler[I, O any] interface {
	Handle(context.Context, I) (O, error)
}

// HandleFunc adapts a plain function to a Handler, similar to http.HandlerFunc.
type HandleFunc[I, O any] func(context.Context, I) (O, error)

// Handle calls f(ctx, input).
func (f HandleFunc[I, O]) Handle(ctx context.Context, input I) (O, error) {
	return f(ctx, input)
}

// JSONAdapter exposes a typed handler as a string handler.
// The model sends arguments as a JSON object and receives the result as JSON.
func JSONAdapter[I, O any](handler Handler[I, O]) Handler[string, string] {
	return HandleFunc[string, string](func(ctx context.Context, input string) (string, error) {
		var req I
		if input != "" {
			if err := json.Unmarshal([]byte(input), &req); err != nil {
				return "", err
			}
		}
		res, err := handler.Handle(ctx, req)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(res)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}
