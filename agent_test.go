package postcrew

import (
	"errors"
	"testing"

	"github.com/postcrew/postcrew/tools"
)

func TestNewAgent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		agent   string
		opts    []AgentOption
		wantErr error
	}{
		{
			name:  "valid",
			agent: "agent_writer",
			opts:  []AgentOption{WithTier(TierCapable), WithInstruction("Write a post.")},
		},
		{
			name:  "default tier",
			agent: "agent_editor",
			opts:  []AgentOption{WithInstruction("Review the draft.")},
		},
		{
			name:    "missing name",
			agent:   " ",
			opts:    []AgentOption{WithInstruction("Review the draft.")},
			wantErr: ErrAgentNameRequired,
		},
		{
			name:    "unknown tier",
			agent:   "agent_writer",
			opts:    []AgentOption{WithTier("turbo"), WithInstruction("Write a post.")},
			wantErr: ErrInvalidTier,
		},
		{
			name:    "empty instruction",
			agent:   "agent_writer",
			opts:    []AgentOption{WithTier(TierCapable), WithInstruction("   ")},
			wantErr: ErrInstructionRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAgent(tt.agent, tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Name() != tt.agent {
				t.Fatalf("expected name %q, got %q", tt.agent, a.Name())
			}
			if !a.Tier().Valid() {
				t.Fatalf("expected a valid tier, got %q", a.Tier())
			}
		})
	}
}

func TestAgentToolsAreCopied(t *testing.T) {
	search := tools.GoogleSearch()
	a := MustNewAgent("agent_researcher", WithInstruction("Research."), WithTools(search))

	search.Name = "changed after construction"
	got := a.Tools()
	if len(got) != 1 || got[0].Name != "google_search" {
		t.Fatalf("unexpected tools: %v", got)
	}
	got[0].Kind = tools.KindFunction
	got[0] = nil
	again := a.Tools()
	if again[0] == nil || !again[0].Builtin() {
		t.Fatal("mutating the returned tools changed the agent")
	}
}

func TestMustNewAgentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an invalid agent")
		}
	}()
	MustNewAgent("agent_writer")
}

func TestTierModelsResolve(t *testing.T) {
	models := DefaultTierModels()
	if m, err := models.Resolve(TierFast); err != nil || m != "gemini-2.5-flash" {
		t.Fatalf("fast tier resolved to %q, %v", m, err)
	}
	if m, err := models.Resolve(TierCapable); err != nil || m != "gemini-2.5-pro" {
		t.Fatalf("capable tier resolved to %q, %v", m, err)
	}
	if _, err := models.Resolve("turbo"); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if _, err := (TierModels{TierFast: "flash"}).Resolve(TierCapable); !errors.Is(err, ErrTierUnmapped) {
		t.Fatalf("expected ErrTierUnmapped, got %v", err)
	}
}
