package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/internal/display"
	"github.com/postcrew/postcrew/stream"
	"github.com/postcrew/postcrew/tools"
)

// DefaultQuestion is asked when no question is given on the command line.
const DefaultQuestion = "When is the next AI Immersion with Google Gemini from Alura?"

const (
	exitOK          = 0
	exitUnavailable = 69
	exitConfig      = 78
)

var searcher = postcrew.MustNewAgent("grounded_search",
	postcrew.WithDescription("Answers a question with Google Search"),
	postcrew.WithTier(postcrew.TierFast),
	postcrew.WithInstruction("Answer the question using up-to-date results from Google Search."),
	postcrew.WithTools(tools.GoogleSearch()),
)

// streamer is the part of the runner the command needs.
type streamer interface {
	RunStream(ctx context.Context, agent postcrew.Agent, prompt string) postcrew.Generator[*postcrew.Message, error]
}

type search struct {
	out    io.Writer
	runner streamer
	logger zerolog.Logger
}

func (s search) run(ctx context.Context, question string) int {
	fmt.Fprintf(s.out, "Asking: '%s'\n", question)

	finals, err := stream.Collect(stream.Filter(s.runner.RunStream(ctx, searcher, question), (*postcrew.Message).IsFinal))
	if err != nil {
		fmt.Fprintf(s.out, "\nAn error occurred while processing the response: %v\n", err)
		fmt.Fprintln(s.out, "\n--- End of execution ---")
		return exitUnavailable
	}

	var (
		answer strings.Builder
		final  *postcrew.Message
	)
	for _, m := range finals {
		answer.WriteString(m.Text())
		final = m
	}

	fmt.Fprintln(s.out, "\n--- Answer ---")
	if text := strings.TrimSpace(answer.String()); text != "" {
		fmt.Fprintln(s.out, text)
		if final != nil {
			if err := display.Grounding(s.out, final.Grounding); err != nil {
				s.logger.Warn().Err(err).Msg("printing grounding metadata")
			}
		}
	} else {
		fmt.Fprintln(s.out, "The response carried no text.")
		fmt.Fprintln(s.out, "\nFull response details:")
		details, err := json.MarshalIndent(final, "", "  ")
		if err != nil {
			s.logger.Warn().Err(err).Msg("encoding response details")
		}
		fmt.Fprintln(s.out, string(details))
	}
	fmt.Fprintln(s.out, "\n--- End of execution ---")
	return exitOK
}
