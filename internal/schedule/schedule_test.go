package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRun_InvalidSpec(t *testing.T) {
	err := Run(context.Background(), "not a cron spec", zerolog.Nop(), func() {})
	if err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestRun_ExecutesUntilCancelled(t *testing.T) {
	var ticks atomic.Int32

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := Run(ctx, "@every 50ms", zerolog.Nop(), func() {
		ticks.Add(1)
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ticks.Load() == 0 {
		t.Fatal("expected at least one scheduled execution")
	}
}
