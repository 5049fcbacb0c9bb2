// Command groundsearch asks Gemini one question with Google Search enabled and
// prints the answer together with the search it ran and the pages it used.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/postcrew/postcrew"
	"github.com/postcrew/postcrew/contrib/gemini"
	"github.com/postcrew/postcrew/internal/config"
	"github.com/postcrew/postcrew/internal/logger"
	"github.com/postcrew/postcrew/internal/telemetry"
	"github.com/postcrew/postcrew/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	logConf, err := config.New[logger.Config](logger.Prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	logger.Init(*logConf)

	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	shutdown, err := telemetry.Setup(ctx, conf.Trace, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("flushing traces")
		}
	}()
	clientConfig, err := conf.ClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	provider, err := gemini.NewProvider(ctx, clientConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return exitConfig
	}
	runner := postcrew.NewRunner(provider,
		postcrew.WithTierModels(conf.TierModels()),
		postcrew.WithLogger(log.Logger),
		postcrew.WithMiddleware(
			middleware.Tracing(middleware.WithSystem("gcp.gemini")),
			middleware.Logging(log.Logger),
		),
	)

	question := DefaultQuestion
	if len(args) > 0 {
		question = strings.Join(args, " ")
	}
	return search{out: os.Stdout, runner: runner, logger: log.Logger}.run(ctx, question)
}
