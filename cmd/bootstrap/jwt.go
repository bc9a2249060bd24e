package bootstrap

import (
	"fmt"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/pkg/sitekey"

	"go.uber.org/fx"
)

var AuthModule = fx.Module("auth",
	fx.Provide(
		NewJWTService,
		NewSiteKeyVerifier,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	return jwt.NewService(cfg.JWT.Secret, duration), nil
}

func NewSiteKeyVerifier(cfg config.Config) *sitekey.Verifier {
	return sitekey.NewVerifier(cfg.Public.SiteKeyHash)
}
