package middleware

import (
	"context"
	"testing"

	"github.com/postcrew/postcrew"
)

func testInvocation(t *testing.T) *postcrew.Invocation {
	t.Helper()
	agent, err := postcrew.NewAgent("agent_planner",
		postcrew.WithTier(postcrew.TierCapable),
		postcrew.WithDescription("Plans the post"),
		postcrew.WithInstruction("Plan an Instagram post."),
	)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	session, err := postcrew.NewInMemorySessionService().CreateSession(context.Background(), agent.Name(), "user1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return &postcrew.Invocation{
		ID:      postcrew.NewInvocationID(),
		Agent:   agent,
		Session: session,
		Model:   "gemini-2.5-pro",
		Message: postcrew.UserMessage("Topic: Go"),
	}
}

func answer(text string) postcrew.Handler {
	return postcrew.HandleFunc(func(ctx context.Context, invocation *postcrew.Invocation) postcrew.Generator[*postcrew.Message, error] {
		return func(yield func(*postcrew.Message, error) bool) {
			msg := postcrew.AssistantMessage(text)
			msg.FinishReason = "STOP"
			msg.TokenUsage = postcrew.TokenUsage{InputTokens: 12, OutputTokens: 34}
			yield(msg, nil)
		}
	})
}

func fail(err error) postcrew.Handler {
	return postcrew.HandleFunc(func(ctx context.Context, invocation *postcrew.Invocation) postcrew.Generator[*postcrew.Message, error] {
		return func(yield func(*postcrew.Message, error) bool) {
			yield(nil, err)
		}
	})
}

func drain(t *testing.T, h postcrew.Handler, invocation *postcrew.Invocation) ([]*postcrew.Message, error) {
	t.Helper()
	var messages []*postcrew.Message
	for msg, err := range h.Handle(context.Background(), invocation) {
		if err != nil {
			return messages, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
