package schedule

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Run executes job on the given cron schedule until ctx is done. Standard
// five-field cron expressions and @every intervals are accepted. Stop
// waits for an in-flight job to finish before returning.
func Run(ctx context.Context, spec string, log zerolog.Logger, job func()) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return err
	}
	c.Start()
	log.Info().Str("schedule", spec).Msg("scheduler started")

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	log.Info().Msg("scheduler stopped")
	return nil
}
