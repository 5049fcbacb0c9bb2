package gemini

import "google.golang.org/genai"

// Option defines a configuration option for the Provider.
type Option func(*options)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *options) {
		o.Temperature = &t
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(p float32) Option {
	return func(o *options) {
		o.TopP = &p
	}
}

// WithMaxOutputTokens sets the maximum number of output tokens.
func WithMaxOutputTokens(tokens int32) Option {
	return func(o *options) {
		o.MaxOutputTokens = tokens
	}
}

// WithThinkingBudget sets the token budget for reasoning.
func WithThinkingBudget(budget int32) Option {
	return func(o *options) {
		o.ThinkingBudget = &budget
	}
}

// WithSafetySettings sets custom safety filtering settings.
func WithSafetySettings(settings []*genai.SafetySetting) Option {
	return func(o *options) {
		o.SafetySettings = settings
	}
}

// options holds configuration options for the Provider.
type options struct {
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens int32
	ThinkingBudget  *int32
	SafetySettings  []*genai.SafetySetting
}
