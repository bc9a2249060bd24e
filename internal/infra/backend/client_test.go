//go:build unit

package backend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/backend"
	"rental-booking/internal/usecase/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	filename    string
	contentType string
	buf         bytes.Buffer
}

func (s *memorySink) SaveBlob(filename, contentType string, r io.Reader) error {
	s.filename = filename
	s.contentType = contentType
	_, err := io.Copy(&s.buf, r)
	return err
}

func newClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, srv.Client(), backend.NewContextTokenSource("service-token"), nil)
}

func newBooking(t *testing.T) shared.NewBooking {
	t.Helper()
	w, err := booking.NewTimeWindow("2024-06-01", "08:00", "2024-06-03", "10:00")
	require.NoError(t, err)
	price, err := booking.QuotePrice(booking.NewMoney(8500), booking.ResolveBillingDays(w.DurationMinutes(), 60))
	require.NoError(t, err)
	return shared.NewBooking{
		CustomerID:     "C1",
		VehicleID:      "V1",
		Window:         w,
		Span:           w.Span(time.UTC),
		PickupLocation: booking.LocationAirport,
		ReturnLocation: booking.LocationCityCenter,
		Price:          price,
		Status:         booking.StatusConfirmed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListVehicles(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicles", r.URL.Path)
		assert.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id":"V1","name":"Fiat 500","licensePlate":"AA-00-BB","dailyRate":85.5,"available":true},
			{"id":"V2","name":"VW Golf","licensePlate":"CC-11-DD","dailyRate":"95","available":false},
			{"id":"","name":"broken","dailyRate":10,"available":true}
		]`)
	}))

	vehicles, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, int64(8550), vehicles[0].DailyRate().Cents())
	assert.True(t, vehicles[0].IsAvailable())
	assert.Equal(t, int64(9500), vehicles[1].DailyRate().Cents())
	assert.False(t, vehicles[1].IsAvailable())
}

func TestCallerTokenIsForwarded(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer staff-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []any{})
	}))

	ctx := backend.WithToken(context.Background(), "staff-token")
	_, err := c.ListCustomers(ctx)
	require.NoError(t, err)
}

func TestListVehicleBookings(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "V1", r.URL.Query().Get("vehicleId"))
		_, _ = io.WriteString(w, `[
			{"id":"B1","vehicleId":"V1","startDate":"2024-06-01T08:00:00Z","endDate":"2024-06-05T08:00:00Z","status":"confirmed"},
			{"id":"B2","vehicleId":"V1","startDate":"2024-06-07T08:00:00Z","endDate":"2024-06-08T08:00:00Z","status":"unknown"}
		]`)
	}))

	got, err := c.ListVehicleBookings(context.Background(), "V1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, booking.StatusConfirmed, got[0].Status)
	assert.True(t, got[0].Span.Start.Equal(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)))
}

func TestCreateBooking(t *testing.T) {
	t.Run("forwards idempotency key", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "255.00", req["totalPrice"])
			assert.Equal(t, "2024-06-01", req["pickupDate"])
			assert.Equal(t, "10:00", req["returnTime"])
			assert.Equal(t, "2024-06-01T08:00:00Z", req["startDate"])
			assert.Equal(t, float64(3), req["billableDays"])
			assert.Equal(t, "airport", req["pickupLocation"])

			writeJSON(w, http.StatusCreated, map[string]string{"id": "BK-1", "status": "confirmed"})
		}))

		created, err := c.CreateBooking(context.Background(), newBooking(t), "key-1")
		require.NoError(t, err)
		assert.Equal(t, "BK-1", created.ID)
		assert.Equal(t, booking.StatusConfirmed, created.Status)
	})

	cases := []struct {
		name   string
		status int
		kind   infra.RepositoryErrorKind
	}{
		{name: "slot taken", status: http.StatusConflict, kind: infra.KindConflict},
		{name: "validation", status: http.StatusUnprocessableEntity, kind: infra.KindRejected},
		{name: "forbidden", status: http.StatusForbidden, kind: infra.KindUnauthorized},
		{name: "outage", status: http.StatusBadGateway, kind: infra.KindUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, map[string]string{"message": "nope"})
			}))

			_, err := c.CreateBooking(context.Background(), newBooking(t), "")
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.kind), "got %v", err)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	c := newClient(t, http.NotFoundHandler())

	_, err := c.GetVehicle(context.Background(), "V404")
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestDownloadContract(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/BK-1/contract", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="BK-1.pdf"`)
		_, _ = io.WriteString(w, "%PDF-1.7")
	}))

	sink := &memorySink{}
	require.NoError(t, c.DownloadContract(context.Background(), "BK-1", sink))
	assert.Equal(t, "BK-1.pdf", sink.filename)
	assert.Equal(t, "application/pdf", sink.contentType)
	assert.Equal(t, "%PDF-1.7", sink.buf.String())

	t.Run("default filename", func(t *testing.T) {
		c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "%PDF")
		}))
		sink := &memorySink{}
		require.NoError(t, c.DownloadContract(context.Background(), "BK-2", sink))
		assert.Equal(t, "contract-BK-2.pdf", sink.filename)
	})
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var vehicleCalls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/vehicles":
			vehicleCalls.Add(1)
			_, _ = io.WriteString(w, `[{"id":"V1","name":"Fiat 500","dailyRate":85,"available":true}]`)
		case "/api/bookings":
			writeJSON(w, http.StatusCreated, map[string]string{"id": "BK-1", "status": "confirmed"})
		}
	}))
	c.UseRedisCache(rdb, time.Minute)

	ctx := context.Background()
	for range 3 {
		vehicles, err := c.ListVehicles(ctx)
		require.NoError(t, err)
		require.Len(t, vehicles, 1)
	}
	assert.Equal(t, int32(1), vehicleCalls.Load())
	assert.True(t, mr.Exists("booking-engine:vehicles"))

	t.Run("booking creation invalidates vehicles", func(t *testing.T) {
		_, err := c.CreateBooking(ctx, newBooking(t), "k")
		require.NoError(t, err)
		assert.False(t, mr.Exists("booking-engine:vehicles"))

		_, err = c.ListVehicles(ctx)
		require.NoError(t, err)
		assert.Equal(t, int32(2), vehicleCalls.Load())
	})

	t.Run("entries expire", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)
		assert.False(t, mr.Exists("booking-engine:vehicles"))
	})
}

func TestContextTokenSource(t *testing.T) {
	src := backend.NewContextTokenSource("")
	_, err := src.Token(context.Background())
	require.ErrorIs(t, err, backend.ErrNoToken)

	tok, err := src.Token(backend.WithToken(context.Background(), "abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
