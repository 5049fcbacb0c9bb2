package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/postcrew/postcrew"
)

const (
	traceScope = "postcrew"
)

// TraceOption defines options for tracing middleware
type TraceOption func(*tracing)

// tracing holds configuration for the agent tracing middleware
type tracing struct {
	system string // e.g., "gcp.gemini"
	tracer trace.Tracer
}

// WithSystem sets the AI system name for tracing, e.g. "gcp.gemini"
func WithSystem(system string) TraceOption {
	return func(t *tracing) {
		t.system = system
	}
}

// WithTracerProvider sets a custom TracerProvider for the tracing middleware
func WithTracerProvider(tr trace.TracerProvider) TraceOption {
	return func(t *tracing) {
		t.tracer = tr.Tracer(traceScope)
	}
}

// Tracing returns a middleware that opens one span per gateway call.
func Tracing(opts ...TraceOption) postcrew.Middleware {
	t := &tracing{
		system: "_OTHER",
		tracer: otel.GetTracerProvider().Tracer(traceScope),
	}
	for _, o := range opts {
		o(t)
	}
	return func(next postcrew.Handler) postcrew.Handler {
		return postcrew.HandleFunc(func(ctx context.Context, invocation *postcrew.Invocation) postcrew.Generator[*postcrew.Message, error] {
			return func(yield func(*postcrew.Message, error) bool) {
				ctx, span := t.start(ctx, invocation)
				var (
					final *postcrew.Message
					err   error
				)
				defer func() { t.end(span, final, err) }()
				for msg, e := range next.Handle(ctx, invocation) {
					if e != nil {
						err = e
					} else if msg.IsFinal() {
						final = msg
					}
					if !yield(msg, e) {
						return
					}
				}
			}
		})
	}
}

func (t *tracing) start(ctx context.Context, invocation *postcrew.Invocation) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("invoke_agent %s", invocation.Agent.Name()))
	span.SetAttributes(
		semconv.GenAIOperationNameInvokeAgent,
		semconv.GenAISystemKey.String(t.system),
		semconv.GenAIAgentName(invocation.Agent.Name()),
		semconv.GenAIAgentDescription(invocation.Agent.Description()),
		semconv.GenAIRequestModel(invocation.Model),
	)
	if invocation.Session != nil {
		span.SetAttributes(semconv.GenAIConversationID(invocation.Session.ID()))
	}
	return ctx, span
}

func (t *tracing) end(span trace.Span, msg *postcrew.Message, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, codes.Ok.String())
	if msg == nil {
		return
	}
	if msg.FinishReason != "" {
		span.SetAttributes(semconv.GenAIResponseFinishReasons(msg.FinishReason))
	}
	if msg.TokenUsage.InputTokens > 0 {
		span.SetAttributes(semconv.GenAIUsageInputTokens(int(msg.TokenUsage.InputTokens)))
	}
	if msg.TokenUsage.OutputTokens > 0 {
		span.SetAttributes(semconv.GenAIUsageOutputTokens(int(msg.TokenUsage.OutputTokens)))
	}
}
