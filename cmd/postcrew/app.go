package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postcrew/postcrew/crew"
	"github.com/postcrew/postcrew/internal/display"
	"github.com/postcrew/postcrew/pipeline"
)

const (
	exitOK          = 0
	exitInput       = 65
	exitUnavailable = 69
	exitConfig      = 78
	exitInterrupted = 130
)

var titles = map[crew.Role]string{
	crew.Researcher: "Agent 1 result (Researcher)",
	crew.Planner:    "Agent 2 result (Planner)",
	crew.Writer:     "Agent 3 result (Writer)",
	crew.Editor:     "Agent 4 result (Final Editor)",
}

// app is the interactive session of one process.
type app struct {
	in      io.Reader
	out     io.Writer
	gateway pipeline.Gateway
	logger  zerolog.Logger
}

func (a app) run(ctx context.Context) int {
	fmt.Fprintln(a.out, "🚀 Starting the Instagram post creation system with 4 agents 🚀")
	fmt.Fprint(a.out, "❓ Please type the TOPIC you want a trends post about: ")

	topic, err := readTopic(a.in)
	if err != nil {
		fmt.Fprintf(a.out, "\n❌ Could not read the topic: %v\n", err)
		return exitInput
	}
	if err := pipeline.ValidateTopic(topic); err != nil {
		fmt.Fprintln(a.out, "❌ You forgot to type the topic! Exiting.")
		return exitInput
	}
	fmt.Fprintf(a.out, "\n✅ Great! Starting work on news about '%s'...\n", topic)

	p := pipeline.New(a.gateway,
		pipeline.WithLogger(a.logger),
		pipeline.WithObserver(func(r pipeline.StageResult) {
			if err := display.Section(a.out, titles[r.Role], r.Text); err != nil {
				a.logger.Warn().Err(err).Msg("writing stage result")
			}
		}),
	)
	if _, err := p.Run(ctx, topic); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(a.out, "\n⛔ Interrupted.")
			return exitInterrupted
		}
		fmt.Fprintf(a.out, "\n🚨 An error occurred during execution: %v\n", err)
		fmt.Fprintln(a.out, "Please check your API key and your internet connection.")
		return exitUnavailable
	}
	return exitOK
}

// readTopic reads one line; a missing trailing newline is accepted.
func readTopic(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
