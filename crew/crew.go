// Package crew defines the four fixed agents of the post pipeline.
package crew

import (
	"fmt"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/tools"
)

// Role identifies a crew member. Roles are ordered as the pipeline runs them.
type Role int

const (
	Researcher Role = iota
	Planner
	Writer
	Editor
)

func (r Role) String() string {
	switch r {
	case Researcher:
		return "researcher"
	case Planner:
		return "planner"
	case Writer:
		return "writer"
	case Editor:
		return "editor"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

var definitions = [...]postcrew.Agent{
	Researcher: postcrew.MustNewAgent("agent_researcher",
		postcrew.WithDescription("Finds recent launches about a topic"),
		postcrew.WithTier(postcrew.TierFast),
		postcrew.WithInstruction(ResearcherInstruction),
		postcrew.WithTools(tools.GoogleSearch()),
	),
	Planner: postcrew.MustNewAgent("agent_planner",
		postcrew.WithDescription("Plans an Instagram post around the most promising launch"),
		postcrew.WithTier(postcrew.TierCapable),
		postcrew.WithInstruction(PlannerInstruction),
		postcrew.WithTools(tools.GoogleSearch()),
	),
	Writer: postcrew.MustNewAgent("agent_writer",
		postcrew.WithDescription("Drafts the Instagram post"),
		postcrew.WithTier(postcrew.TierCapable),
		postcrew.WithInstruction(WriterInstruction),
	),
	Editor: postcrew.MustNewAgent("agent_editor",
		postcrew.WithDescription("Reviews the draft for a young audience"),
		postcrew.WithTier(postcrew.TierFast),
		postcrew.WithInstruction(EditorInstruction),
	),
}

// Roles returns every role in pipeline order.
func Roles() []Role {
	return []Role{Researcher, Planner, Writer, Editor}
}

// Definition returns the agent for a role, or nil for an unknown role.
func Definition(r Role) postcrew.Agent {
	if r < Researcher || r > Editor {
		return nil
	}
	return definitions[r]
}
