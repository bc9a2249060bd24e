package bootstrap

import (
	"rental-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	MetricsModule,
	AuthModule,
	BackendModule,
	components.RepositoryModule,
	components.UseCaseModule,
	JobsModule,
	components.HandlerModule,
)
