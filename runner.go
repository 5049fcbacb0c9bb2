package postcrew

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postcrew/postcrew/stream"
	"github.com/postcrew/postcrew/tools"
	"golang.org/x/sync/errgroup"
)

// DefaultUserID is the user a session is opened for when none is configured.
const DefaultUserID = "user1"

// RunOption defines options for configuring the Runner.
type RunOption func(*Runner)

// WithSessionService sets the session service shared by all runs.
func WithSessionService(sessions SessionService) RunOption {
	return func(r *Runner) {
		r.sessions = sessions
	}
}

// WithUserID sets the user id sessions are opened for.
func WithUserID(userID string) RunOption {
	return func(r *Runner) {
		r.userID = userID
	}
}

// WithTierModels sets the model used for each tier.
func WithTierModels(models TierModels) RunOption {
	return func(r *Runner) {
		r.tierModels = models
	}
}

// WithMiddleware sets the middleware wrapped around every run.
func WithMiddleware(ms ...Middleware) RunOption {
	return func(r *Runner) {
		r.middlewares = ms
	}
}

// WithMaxIterations sets the maximum number of model turns per run.
// By default, it is set to 10.
func WithMaxIterations(n int) RunOption {
	return func(r *Runner) {
		r.maxIterations = n
	}
}

// WithStreaming makes the runner consume the provider's chunk stream.
func WithStreaming(streaming bool) RunOption {
	return func(r *Runner) {
		r.streaming = streaming
	}
}

// WithLogger sets the logger for session housekeeping.
func WithLogger(logger zerolog.Logger) RunOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner executes agents against a model provider. Every call opens its own
// session, so nothing carries over between runs of the same agent.
type Runner struct {
	model         ModelProvider
	sessions      SessionService
	userID        string
	tierModels    TierModels
	middlewares   []Middleware
	maxIterations int
	streaming     bool
	logger        zerolog.Logger
}

// NewRunner creates a new Runner with the given model provider and options.
func NewRunner(model ModelProvider, opts ...RunOption) *Runner {
	r := &Runner{
		model:         model,
		sessions:      NewInMemorySessionService(),
		userID:        DefaultUserID,
		tierModels:    DefaultTierModels(),
		maxIterations: 10,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run submits prompt to agent and returns the trimmed text of the final response.
func (r *Runner) Run(ctx context.Context, agent Agent, prompt string) (string, error) {
	final := stream.Filter(r.RunStream(ctx, agent, prompt), (*Message).IsFinal)
	texts, err := stream.Collect(stream.Map(final, func(m *Message) (string, error) {
		return m.Text(), nil
	}))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(texts, "")), nil
}

// RunStream submits prompt to agent and yields every event of the run:
// streaming chunks, executed tool calls, and the final response.
func (r *Runner) RunStream(ctx context.Context, agent Agent, prompt string) Generator[*Message, error] {
	return func(yield func(*Message, error) bool) {
		invocation, err := r.buildInvocation(ctx, agent, prompt)
		if err != nil {
			yield(nil, err)
			return
		}
		defer r.discardSession(context.WithoutCancel(ctx), invocation.Session)

		handler := Handler(HandleFunc(r.handle))
		if len(r.middlewares) > 0 {
			handler = ChainMiddlewares(r.middlewares...)(handler)
		}
		for m, err := range handler.Handle(ctx, invocation) {
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

// buildInvocation validates the request and opens a fresh session for it.
func (r *Runner) buildInvocation(ctx context.Context, agent Agent, prompt string) (*Invocation, error) {
	if r.model == nil {
		return nil, ErrModelProviderRequired
	}
	if agent == nil {
		return nil, ErrAgentRequired
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrPromptRequired
	}
	model, err := r.tierModels.Resolve(agent.Tier())
	if err != nil {
		return nil, err
	}
	session, err := r.sessions.CreateSession(ctx, agent.Name(), r.userID)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &Invocation{
		ID:          NewInvocationID(),
		Agent:       agent,
		Session:     session,
		Model:       model,
		Instruction: SystemMessage(agent.Instruction()),
		Message:     UserMessage(prompt),
		Tools:       agent.Tools(),
		Streamable:  r.streaming,
	}, nil
}

// discardSession deletes the session of a finished run.
func (r *Runner) discardSession(ctx context.Context, session Session) {
	if err := r.sessions.DeleteSession(ctx, session.AppName(), session.UserID(), session.ID()); err != nil {
		r.logger.Warn().Err(err).Str("session", session.ID()).Str("agent", session.AppName()).Msg("discarding session")
	}
}

// storeSession appends completed messages to the session history.
func (r *Runner) storeSession(ctx context.Context, invocation *Invocation, message *Message) error {
	if message.Status != StatusCompleted {
		return nil
	}
	message.Author = invocation.Agent.Name()
	message.InvocationID = invocation.ID
	return invocation.Session.Append(ctx, []*Message{message})
}

// handle drives the model until it answers without requesting a tool.
func (r *Runner) handle(ctx context.Context, invocation *Invocation) Generator[*Message, error] {
	return func(yield func(*Message, error) bool) {
		req := &ModelRequest{
			Model:       invocation.Model,
			Instruction: invocation.Instruction,
			Messages:    []*Message{invocation.Message},
			Tools:       invocation.Tools,
		}
		if err := r.storeSession(ctx, invocation, invocation.Message); err != nil {
			yield(nil, err)
			return
		}
		for i := 0; i < r.maxIterations; i++ {
			var finalResponse *ModelResponse
			if !invocation.Streamable {
				resp, err := r.model.Generate(ctx, req)
				if err != nil {
					yield(nil, err)
					return
				}
				finalResponse = resp
			} else {
				for resp, err := range r.model.NewStreaming(ctx, req) {
					if err != nil {
						yield(nil, err)
						return
					}
					if resp.Message.Status == StatusCompleted {
						finalResponse = resp
						continue
					}
					resp.Message.Author = invocation.Agent.Name()
					resp.Message.InvocationID = invocation.ID
					if !yield(resp.Message, nil) {
						return
					}
				}
			}
			if finalResponse == nil || finalResponse.Message == nil {
				yield(nil, ErrNoFinalResponse)
				return
			}
			message := finalResponse.Message
			message.Status = StatusCompleted
			if message.Role == RoleTool {
				if err := r.executeTools(ctx, invocation, message); err != nil {
					yield(nil, err)
					return
				}
				if err := r.storeSession(ctx, invocation, message); err != nil {
					yield(nil, err)
					return
				}
				if !yield(message, nil) {
					return
				}
				// the model reads the tool results on the next turn
				req.Messages = append(req.Messages, message)
				continue
			}
			message.Role = RoleAssistant
			if err := r.storeSession(ctx, invocation, message); err != nil {
				yield(nil, err)
				return
			}
			yield(message, nil)
			return
		}
		yield(nil, ErrMaxIterationsExceeded)
	}
}

// executeTools runs every tool call of a model turn and records the results in place.
func (r *Runner) executeTools(ctx context.Context, invocation *Invocation, message *Message) error {
	var m sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	for i, part := range message.Parts {
		call, ok := part.(ToolPart)
		if !ok {
			continue
		}
		eg.Go(func() error {
			tool, err := findTool(invocation.Tools, call.Name)
			if err != nil {
				return err
			}
			response, err := tool.Handle(ctx, call.Request)
			if err != nil {
				return fmt.Errorf("executing tool %s: %w", call.Name, err)
			}
			call.Response = response
			m.Lock()
			message.Parts[i] = call
			m.Unlock()
			return nil
		})
	}
	return eg.Wait()
}

func findTool(granted []*tools.Tool, name string) (*tools.Tool, error) {
	for _, tool := range granted {
		if tool.Name == name && !tool.Builtin() {
			return tool, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
}
