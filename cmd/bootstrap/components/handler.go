package components

import (
	"rental-booking/internal/handler"
	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/pkg/sitekey"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		fx.Annotate(
			middleware.NewAuthMiddleware,
			fx.From(new(*jwt.Service)),
		),
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.Public.RatePerSec, cfg.Public.Burst)
		},
	),
	fx.Invoke(newRouter),
)

func newRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	bookings *api.BookingHandler,
	auth *middleware.AuthMiddleware,
	siteKey *sitekey.Verifier,
	limiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
) {
	handler.NewRouter(engine, handler.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		Bookings:        bookings,
		Auth:            auth,
		SiteKey:         siteKey,
		RateLimiter:     limiter,
		MetricsGatherer: gatherer,
	})
}
