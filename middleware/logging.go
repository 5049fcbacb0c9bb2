package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/postcrew/postcrew"
)

// Logging returns a middleware that logs every gateway call: its start at
// debug level, each tool turn, and the outcome with the elapsed time.
func Logging(logger zerolog.Logger) postcrew.Middleware {
	return func(next postcrew.Handler) postcrew.Handler {
		return postcrew.HandleFunc(func(ctx context.Context, invocation *postcrew.Invocation) postcrew.Generator[*postcrew.Message, error] {
			return func(yield func(*postcrew.Message, error) bool) {
				start := time.Now()
				l := logger.With().
					Str("agent", invocation.Agent.Name()).
					Str("model", invocation.Model).
					Str("session", invocation.Session.ID()).
					Str("invocation", invocation.ID).
					Logger()
				l.Debug().Int("tools", len(invocation.Tools)).Msg("agent run started")
				for msg, err := range next.Handle(ctx, invocation) {
					switch {
					case err != nil:
						l.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("agent run failed")
					case msg.Role == postcrew.RoleTool && msg.Status == postcrew.StatusCompleted:
						for _, call := range msg.ToolParts() {
							l.Debug().Str("tool", call.Name).Msg("tool executed")
						}
					case msg.IsFinal():
						e := l.Info().
							Dur("elapsed", time.Since(start)).
							Int("chars", len(msg.Text())).
							Int64("input_tokens", msg.TokenUsage.InputTokens).
							Int64("output_tokens", msg.TokenUsage.OutputTokens)
						if msg.FinishReason != "" {
							e = e.Str("finish_reason", msg.FinishReason)
						}
						if msg.Grounding != nil {
							e = e.Int("search_queries", len(msg.Grounding.Queries)).Int("sources", len(msg.Grounding.Sources))
						}
						e.Msg("agent run completed")
					}
					if !yield(msg, err) {
						return
					}
				}
			}
		})
	}
}
