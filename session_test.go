package postcrew

import (
	"context"
	"testing"
)

func TestInMemorySessionService(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemorySessionService()

	a, err := svc.CreateSession(ctx, "agent_planner", "user1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	b, err := svc.CreateSession(ctx, "agent_planner", "user1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if a.ID() == b.ID() {
		t.Fatal("expected distinct session ids")
	}
	if a.AppName() != "agent_planner" || a.UserID() != "user1" {
		t.Fatalf("unexpected session owner: %s/%s", a.AppName(), a.UserID())
	}
	if svc.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", svc.Len())
	}

	if err := svc.DeleteSession(ctx, "agent_planner", "user1", a.ID()); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := svc.DeleteSession(ctx, "agent_planner", "user1", a.ID()); err != nil {
		t.Fatalf("deleting twice: %v", err)
	}
	if svc.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", svc.Len())
	}
}

func TestSessionHistory(t *testing.T) {
	ctx := context.Background()
	session, _ := NewInMemorySessionService().CreateSession(ctx, "agent_writer", "user1")

	if err := session.Append(ctx, []*Message{UserMessage("hello")}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	history := session.History()
	if len(history) != 1 || history[0].Text() != "hello" {
		t.Fatalf("unexpected history: %v", history)
	}
	history[0] = nil
	if session.History()[0] == nil {
		t.Fatal("History must return a copy")
	}
}
