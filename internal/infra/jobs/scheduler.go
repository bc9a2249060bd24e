package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the engine's periodic maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func NewScheduler(cfg config.JobsConfig, purger *IdempotencyPurger, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(cfg.IdempotencyPurgeSpec, purger.Run); err != nil {
		return nil, fmt.Errorf("register idempotency purge %q: %w", cfg.IdempotencyPurgeSpec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Cron scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs or for ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Cron scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Cron scheduler stop timed out")
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
