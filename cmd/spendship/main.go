package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/spendship/spendship/internal/billing"
	"github.com/spendship/spendship/internal/config"
	"github.com/spendship/spendship/internal/loganalytics"
	"github.com/spendship/spendship/internal/schedule"
)

func main() {
	_ = godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load configuration")
	}

	client, err := loganalytics.New(
		loganalytics.Credentials{WorkspaceID: cfg.Workspace.ID, SharedKey: cfg.Workspace.Key},
		loganalytics.WithDomain(cfg.Shipper.Domain),
		loganalytics.WithBaseURL(cfg.Shipper.Endpoint),
		loganalytics.WithTimeout(cfg.HTTPTimeout()),
		loganalytics.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid workspace credentials")
	}

	source, err := billing.NewSource(cfg.Source.Kind, cfg.Source.Endpoint, billing.UsageReport{
		BudgetAmount: cfg.Source.Budget,
		Spend:        cfg.Source.Spend,
	}, cfg.HTTPTimeout())
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid billing source")
	}

	runID := uuid.New()
	logger = logger.With().Str("run_id", runID.String()).Logger()

	ship := func(ctx context.Context) error {
		report, err := source.Fetch(ctx)
		if err != nil {
			return err
		}
		status, err := client.Send(ctx, cfg.Shipper.LogType, report.Record(), time.Now())
		if err != nil {
			return err
		}
		logger.Info().
			Int("status", status).
			Str("log_type", cfg.Shipper.LogType).
			Str("period", report.BillingPeriod).
			Msg("spend record shipped")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Shipper.Schedule == "" {
		if err := ship(ctx); err != nil {
			logger.Fatal().Err(err).Msg("send failed")
		}
		return
	}

	err = schedule.Run(ctx, cfg.Shipper.Schedule, logger, func() {
		if err := ship(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled send failed")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("scheduler failed")
	}
}
