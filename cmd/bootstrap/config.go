package bootstrap

import (
	"fmt"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingPolicy,
	),
)

func NewBookingPolicy(cfg config.Config) (booking.Policy, error) {
	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return booking.Policy{}, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", cfg.Booking.TimeZone, err)
	}
	if cfg.Booking.LatenessThresholdMinutes < 0 {
		return booking.Policy{}, fmt.Errorf("BOOKING_LATENESS_THRESHOLD_MINUTES must not be negative")
	}
	if cfg.Booking.MinDurationMinutes < 0 {
		return booking.Policy{}, fmt.Errorf("BOOKING_MIN_DURATION_MINUTES must not be negative")
	}
	return booking.Policy{
		LatenessThresholdMinutes: cfg.Booking.LatenessThresholdMinutes,
		MinDurationMinutes:       cfg.Booking.MinDurationMinutes,
		Location:                 loc,
	}, nil
}
