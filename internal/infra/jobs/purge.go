package jobs

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/clock"
)

const purgeTimeout = 30 * time.Second

type ExpiredKeyStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PurgeRecorder interface {
	AddPurged(count int64)
}

// IdempotencyPurger removes idempotency keys past their expiry.
type IdempotencyPurger struct {
	store    ExpiredKeyStore
	recorder PurgeRecorder
	clock    clock.Clock
	logger   *slog.Logger
}

func NewIdempotencyPurger(store ExpiredKeyStore, recorder PurgeRecorder, clk clock.Clock, logger *slog.Logger) *IdempotencyPurger {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdempotencyPurger{
		store:    store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// Run is the cron entry point.
func (p *IdempotencyPurger) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	if _, err := p.Purge(ctx); err != nil {
		p.logger.Error("Idempotency purge failed", "error", err)
	}
}

func (p *IdempotencyPurger) Purge(ctx context.Context) (int64, error) {
	n, err := p.store.DeleteExpired(ctx, p.clock.Now())
	if err != nil {
		return 0, err
	}
	p.recorder.AddPurged(n)
	if n > 0 {
		p.logger.Info("Purged expired idempotency keys", "count", n)
	}
	return n, nil
}
