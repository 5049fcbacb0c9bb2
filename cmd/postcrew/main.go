// Command postcrew asks for a topic and turns recent launches about it into a
// reviewed Instagram post.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
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
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	logConf, err := config.New[logger.Config](logger.Prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		return exitConfig
	}
	logger.Init(*logConf)

	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		return exitConfig
	}
	shutdown, err := telemetry.Setup(ctx, conf.Trace, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		return exitConfig
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("flushing traces")
		}
	}()
	clientConfig, err := conf.ClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		return exitConfig
	}
	provider, err := gemini.NewProvider(ctx, clientConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		return exitConfig
	}

	opts := []postcrew.RunOption{
		postcrew.WithTierModels(conf.TierModels()),
		postcrew.WithStreaming(conf.Streaming),
		postcrew.WithLogger(log.Logger),
		postcrew.WithMiddleware(
			middleware.Tracing(middleware.WithSystem("gcp.gemini")),
			middleware.Logging(log.Logger),
		),
	}
	if conf.UserID != "" {
		opts = append(opts, postcrew.WithUserID(conf.UserID))
	}
	runner := postcrew.NewRunner(provider, opts...)

	log.Debug().Str("version", postcrew.Version).Msg("postcrew ready")
	return app{
		in:      os.Stdin,
		out:     os.Stdout,
		gateway: runner,
		logger:  log.Logger,
	}.run(ctx)
}
