package components

import (
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewDefaultPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	NewSubmissionConfig,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewQuoteQueries,
		queries.NewAvailabilityQueries,
		queries.NewValidationQueries,
		queries.NewContractQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSubmissionCommands,
	),
)

func NewSubmissionConfig(cfg config.Config) (commands.SubmissionConfig, error) {
	policy, err := commands.NewConflictPolicy(cfg.Booking.ConflictPolicy)
	if err != nil {
		return commands.SubmissionConfig{}, err
	}
	return commands.SubmissionConfig{
		ConflictPolicy: policy,
		IdempotencyTTL: cfg.Booking.IdempotencyTTL,
	}, nil
}
