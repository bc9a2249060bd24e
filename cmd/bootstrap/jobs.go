package bootstrap

import (
	"context"

	"rental-booking/internal/infra/jobs"
	"rental-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewIdempotencyPurger,
		func(cfg config.Config, p *jobs.IdempotencyPurger) (*jobs.Scheduler, error) {
			return jobs.NewScheduler(cfg.Jobs, p, nil)
		},
	),
	fx.Invoke(startScheduler),
)

func startScheduler(lc fx.Lifecycle, s *jobs.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
}
