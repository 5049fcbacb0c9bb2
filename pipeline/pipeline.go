// Package pipeline turns a topic into a reviewed Instagram post by running the
// crew one stage after the other, each stage reading the previous output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/crew"
)

// DateLayout is the dd/mm/yyyy layout handed to the researcher.
const DateLayout = "02/01/2006"

// ErrEmptyTopic is returned for a blank topic, before any stage runs.
var ErrEmptyTopic = errors.New("pipeline: topic is empty")

// Gateway submits a prompt to an agent and returns its final text.
type Gateway interface {
	Run(ctx context.Context, agent postcrew.Agent, prompt string) (string, error)
}

// State is the position of a run in the pipeline.
type State string

const (
	// Idle is the state of a run before its first stage starts.
	Idle State = "idle"
	// Searching runs the researcher over the topic.
	Searching State = "searching"
	// Planning runs the planner over the launches found.
	Planning State = "planning"
	// Drafting runs the writer over the plan.
	Drafting State = "drafting"
	// Reviewing runs the editor over the draft.
	Reviewing State = "reviewing"
	// Done means every stage completed.
	Done State = "done"
	// Failed means a stage returned an error and later stages were skipped.
	Failed State = "failed"
)

// stage binds an in-progress state to the crew member that serves it and the
// template its prompt is rendered from.
type stage struct {
	state    State
	role     crew.Role
	template string
}

var stages = []stage{
	{state: Searching, role: crew.Researcher, template: "Topic: {{.topic}}\nToday's date: {{.date}}"},
	{state: Planning, role: crew.Planner, template: "Topic: {{.topic}}\nRecent launches found: {{.previous}}"},
	{state: Drafting, role: crew.Writer, template: "Topic: {{.topic}}\nPost plan: {{.previous}}"},
	{state: Reviewing, role: crew.Editor, template: "Topic: {{.topic}}\nDraft to review: {{.previous}}"},
}

// StageResult is the output of one completed stage.
type StageResult struct {
	Stage  State
	Role   crew.Role
	Agent  string
	Prompt string
	Text   string
}

// Run records a single pass over the pipeline.
type Run struct {
	Topic   string
	Date    string
	State   State
	Results []StageResult
}

// Final returns the editor's text, or "" when the run did not finish.
func (r *Run) Final() string {
	if r.State != Done || len(r.Results) == 0 {
		return ""
	}
	return r.Results[len(r.Results)-1].Text
}

// StageError reports the stage a run was aborted at.
type StageError struct {
	Stage State
	Agent string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Agent, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the source of today's date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithObserver sets a callback invoked after every completed stage.
func WithObserver(observer func(StageResult)) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// WithLogger sets the logger for stage progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithAgents replaces the crew definition used for the given roles.
func WithAgents(agents map[crew.Role]postcrew.Agent) Option {
	return func(p *Pipeline) {
		for role, agent := range agents {
			p.agents[role] = agent
		}
	}
}

// Pipeline runs the researcher, planner, writer and editor in order.
type Pipeline struct {
	gateway  Gateway
	now      func() time.Time
	observer func(StageResult)
	logger   zerolog.Logger
	agents   map[crew.Role]postcrew.Agent
}

// New creates a Pipeline that reaches the model through gateway.
func New(gateway Gateway, opts ...Option) *Pipeline {
	p := &Pipeline{
		gateway: gateway,
		now:     time.Now,
		logger:  zerolog.Nop(),
		agents:  make(map[crew.Role]postcrew.Agent, len(stages)),
	}
	for _, r := range crew.Roles() {
		p.agents[r] = crew.Definition(r)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateTopic rejects a blank topic.
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}

// Run executes every stage for topic. On failure the returned Run holds the
// results of the stages that completed and the error is a *StageError.
func (p *Pipeline) Run(ctx context.Context, topic string) (*Run, error) {
	run := &Run{Topic: topic, State: Idle}
	if err := ValidateTopic(topic); err != nil {
		return run, err
	}
	run.Date = p.now().Format(DateLayout)

	previous := ""
	for _, s := range stages {
		agent := p.agents[s.role]
		run.State = s.state
		result, err := p.runStage(ctx, run, s, agent, previous)
		if err != nil {
			run.State = Failed
			name := s.role.String()
			if agent != nil {
				name = agent.Name()
			}
			p.logger.Error().Err(err).Str("stage", string(s.state)).Str("agent", name).Msg("stage failed")
			return run, &StageError{Stage: s.state, Agent: name, Err: err}
		}
		run.Results = append(run.Results, result)
		if p.observer != nil {
			p.observer(result)
		}
		previous = result.Text
	}
	run.State = Done
	return run, nil
}

func (p *Pipeline) runStage(ctx context.Context, run *Run, s stage, agent postcrew.Agent, previous string) (StageResult, error) {
	if err := ctx.Err(); err != nil {
		return StageResult{}, err
	}
	if agent == nil {
		return StageResult{}, postcrew.ErrAgentRequired
	}
	prompt, err := buildPrompt(s.template, run.Topic, run.Date, previous)
	if err != nil {
		return StageResult{}, err
	}
	start := time.Now()
	p.logger.Debug().Str("stage", string(s.state)).Str("agent", agent.Name()).Msg("stage started")
	text, err := p.gateway.Run(ctx, agent, prompt)
	if err != nil {
		return StageResult{}, err
	}
	p.logger.Info().
		Str("stage", string(s.state)).
		Str("agent", agent.Name()).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(text)).
		Msg("stage completed")
	return StageResult{
		Stage:  s.state,
		Role:   s.role,
		Agent:  agent.Name(),
		Prompt: prompt,
		Text:   text,
	}, nil
}

func buildPrompt(tmpl, topic, date, previous string) (string, error) {
	prompt, err := postcrew.NewPromptTemplate().User(tmpl, map[string]any{
		"topic":    topic,
		"date":     date,
		"previous": previous,
	}).Build()
	if err != nil {
		return "", fmt.Errorf("building prompt: %w", err)
	}
	return prompt.String(), nil
}
