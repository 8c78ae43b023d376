package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/spendship/spendship/internal/collector"
	"github.com/spendship/spendship/internal/config"
	"github.com/spendship/spendship/internal/loganalytics"
)

func main() {
	_ = godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}

	col, err := collector.New(
		loganalytics.Credentials{WorkspaceID: cfg.Workspace.ID, SharedKey: cfg.Workspace.Key},
		collector.WithMaxSkew(cfg.MaxSkew()),
		collector.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid collector credentials")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Collector.Port
	logger.Info().Str("addr", addr).Msg("collector listening")
	if err := col.Start(ctx, addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("collector exited")
	}
}
