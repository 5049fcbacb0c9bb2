package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/crew"
)

// fakeGateway answers every agent with canned text and records the calls.
type fakeGateway struct {
	calls   []string
	prompts []string
	answers map[string]string
	failAt  int
}

func (g *fakeGateway) Run(ctx context.Context, agent postcrew.Agent, prompt string) (string, error) {
	g.calls = append(g.calls, agent.Name())
	g.prompts = append(g.prompts, prompt)
	if g.failAt > 0 && len(g.calls) == g.failAt {
		return "", errors.New("backend unavailable")
	}
	if answer, ok := g.answers[agent.Name()]; ok {
		return answer, nil
	}
	return "output of " + agent.Name(), nil
}

func fixedClock() time.Time {
	return time.Date(2025, time.May, 14, 9, 30, 0, 0, time.UTC)
}

func TestRunOrder(t *testing.T) {
	gateway := &fakeGateway{}
	var observed []State
	p := New(gateway, WithClock(fixedClock), WithObserver(func(r StageResult) {
		observed = append(observed, r.Stage)
	}))

	run, err := p.Run(context.Background(), "Generative AI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"agent_researcher", "agent_planner", "agent_writer", "agent_editor"}
	if !reflect.DeepEqual(gateway.calls, want) {
		t.Fatalf("expected calls %v, got %v", want, gateway.calls)
	}
	if !reflect.DeepEqual(observed, []State{Searching, Planning, Drafting, Reviewing}) {
		t.Fatalf("unexpected observed stages: %v", observed)
	}
	if run.State != Done || len(run.Results) != 4 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Final() != "output of agent_editor" {
		t.Fatalf("unexpected final text %q", run.Final())
	}
}

func TestRunEmptyTopic(t *testing.T) {
	for _, topic := range []string{"", "   ", "\n\t"} {
		gateway := &fakeGateway{}
		run, err := New(gateway).Run(context.Background(), topic)
		if !errors.Is(err, ErrEmptyTopic) {
			t.Fatalf("expected ErrEmptyTopic for %q, got %v", topic, err)
		}
		if len(gateway.calls) != 0 {
			t.Fatalf("expected no gateway calls, got %v", gateway.calls)
		}
		if run.State != Idle {
			t.Fatalf("expected idle state, got %s", run.State)
		}
	}
}

func TestRunFailureAbortsRemainingStages(t *testing.T) {
	gateway := &fakeGateway{failAt: 3}
	run, err := New(gateway, WithClock(fixedClock)).Run(context.Background(), "Go")

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected a StageError, got %v", err)
	}
	if stageErr.Stage != Drafting || stageErr.Agent != "agent_writer" {
		t.Fatalf("unexpected failure report: %+v", stageErr)
	}
	if !strings.Contains(err.Error(), "backend unavailable") {
		t.Fatalf("expected the underlying error in %q", err)
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	if run.State != Failed {
		t.Fatalf("expected failed state, got %s", run.State)
	}
	for _, call := range gateway.calls {
		if call == "agent_editor" {
			t.Fatal("editor must not run after a failed stage")
		}
	}
	if run.Final() != "" {
		t.Fatalf("expected no final text, got %q", run.Final())
	}
}

func TestRunIdempotent(t *testing.T) {
	answers := map[string]string{
		"agent_researcher": "launch A, launch B",
		"agent_planner":    "plan for launch A",
		"agent_writer":     "draft #ai",
		"agent_editor":     crew.Approval,
	}
	p := New(&fakeGateway{answers: answers}, WithClock(fixedClock))
	first, err := p.Run(context.Background(), "AI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Run(context.Background(), "AI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Fatalf("results differ:\n%+v\n%+v", first.Results, second.Results)
	}
}

func TestPrompts(t *testing.T) {
	gateway := &fakeGateway{answers: map[string]string{
		"agent_researcher": "Y",
		"agent_planner":    "the plan",
		"agent_writer":     "the draft",
	}}
	if _, err := New(gateway, WithClock(fixedClock)).Run(context.Background(), "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Topic: X\nToday's date: 14/05/2025",
		"Topic: X\nRecent launches found: Y",
		"Topic: X\nPost plan: the plan",
		"Topic: X\nDraft to review: the draft",
	}
	if !reflect.DeepEqual(gateway.prompts, want) {
		t.Fatalf("unexpected prompts:\n%q\nwant\n%q", gateway.prompts, want)
	}
}

func TestPromptKeepsTemplateSyntaxVerbatim(t *testing.T) {
	gateway := &fakeGateway{answers: map[string]string{"agent_researcher": "{{.topic}} <b>&</b>"}}
	if _, err := New(gateway, WithClock(fixedClock)).Run(context.Background(), "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gateway.prompts[1], "{{.topic}} <b>&</b>") {
		t.Fatalf("expected the output verbatim, got %q", gateway.prompts[1])
	}
}

func TestWithAgents(t *testing.T) {
	editor := postcrew.MustNewAgent("strict_editor", postcrew.WithInstruction("reject everything"))
	gateway := &fakeGateway{}
	if _, err := New(gateway, WithAgents(map[crew.Role]postcrew.Agent{crew.Editor: editor})).Run(context.Background(), "Go"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := gateway.calls[3]; got != "strict_editor" {
		t.Fatalf("expected the substituted editor, got %s", got)
	}
	if crew.Definition(crew.Editor).Name() != "agent_editor" {
		t.Fatal("substitution must not change the crew")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gateway := &fakeGateway{}
	_, err := New(gateway).Run(ctx, "Go")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("expected no calls, got %v", gateway.calls)
	}
}
