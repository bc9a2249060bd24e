package components

import (
	"rental-booking/internal/infra/backend"
	"rental-booking/internal/infra/jobs"
	"rental-booking/internal/infra/metrics"
	"rental-booking/internal/infra/repository"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
			fx.As(new(jobs.ExpiredKeyStore)),
		),
		// The rental backend is both the read model and the write target.
		fx.Annotate(
			func(c *backend.Client) *backend.Client { return c },
			fx.As(new(queries.RentalBackend)),
			fx.As(new(commands.BookingBackend)),
		),
		fx.Annotate(
			func(m *metrics.Metrics) *metrics.Metrics { return m },
			fx.As(new(queries.Recorder)),
			fx.As(new(commands.Recorder)),
			fx.As(new(jobs.PurgeRecorder)),
		),
	),
)
