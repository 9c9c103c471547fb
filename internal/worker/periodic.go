package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PeriodicQueue can report whether a job type is already queued.
type PeriodicQueue interface {
	Enqueuer
	HasPendingJob(ctx context.Context, jobType string) (bool, error)
}

// EnqueueFunc queues one job.
type EnqueueFunc func(ctx context.Context, q Enqueuer) error

// RunPeriodic calls enqueue immediately and then every interval until ctx
// is done. A tick is skipped while a job of jobType is still pending or
// running, so a slow sweep never piles up behind itself.
func RunPeriodic(ctx context.Context, q PeriodicQueue, jobType string, interval time.Duration, enqueue EnqueueFunc, logger *slog.Logger) {
	logger = logger.With("job_type", jobType, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := enqueueIfIdle(ctx, q, jobType, enqueue); err != nil {
			logger.Error("Failed to enqueue periodic job", "error", err)
		}

		select {
		case <-ctx.Done():
			logger.Debug("Periodic enqueue stopped")
			return
		case <-ticker.C:
		}
	}
}

func enqueueIfIdle(ctx context.Context, q PeriodicQueue, jobType string, enqueue EnqueueFunc) error {
	pending, err := q.HasPendingJob(ctx, jobType)
	if err != nil {
		return fmt.Errorf("check pending %s: %w", jobType, err)
	}
	if pending {
		return nil
	}
	return enqueue(ctx, q)
}
