//go:build unit

package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/infra/jobs"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	deleted int64
	err     error
	gotNow  time.Time
}

func (f *fakeStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.gotNow = now
	return f.deleted, f.err
}

type fakeRecorder struct{ total int64 }

func (f *fakeRecorder) AddPurged(n int64) { f.total += n }

func TestIdempotencyPurger(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("records purged keys", func(t *testing.T) {
		store := &fakeStore{deleted: 4}
		rec := &fakeRecorder{}
		p := jobs.NewIdempotencyPurger(store, rec, clock.NewMockClock(now), nil)

		n, err := p.Purge(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.Equal(t, int64(4), rec.total)
		assert.Equal(t, now, store.gotNow)
	})

	t.Run("store failure records nothing", func(t *testing.T) {
		store := &fakeStore{err: errors.New("db down")}
		rec := &fakeRecorder{}
		p := jobs.NewIdempotencyPurger(store, rec, clock.NewMockClock(now), nil)

		_, err := p.Purge(context.Background())
		require.Error(t, err)
		assert.Zero(t, rec.total)

		assert.NotPanics(t, p.Run)
	})
}

func TestScheduler(t *testing.T) {
	p := jobs.NewIdempotencyPurger(&fakeStore{}, &fakeRecorder{}, clock.NewRealClock(), nil)

	t.Run("registers the purge job", func(t *testing.T) {
		s, err := jobs.NewScheduler(config.JobsConfig{IdempotencyPurgeSpec: "0 */5 * * * *"}, p, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Entries())

		s.Start()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	})

	t.Run("rejects a bad spec", func(t *testing.T) {
		_, err := jobs.NewScheduler(config.JobsConfig{IdempotencyPurgeSpec: "every hour"}, p, nil)
		assert.Error(t, err)
	})
}
