package bootstrap

import (
	"log/slog"
	"net/http"

	"rental-booking/internal/infra/backend"
	"rental-booking/internal/infra/metrics"
	"rental-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		NewBackendClient,
	),
)

func NewBackendClient(cfg config.Config, redisClient *redis.Client, m *metrics.Metrics, logger *slog.Logger) *backend.Client {
	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	client := backend.NewClient(
		cfg.Backend.BaseURL,
		httpClient,
		backend.NewContextTokenSource(cfg.Backend.ServiceToken),
		logger,
	)
	if redisClient != nil {
		client.UseRedisCache(redisClient, cfg.Backend.CacheTTL)
	}
	client.UseMetrics(m)
	return client
}
