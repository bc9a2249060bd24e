//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/customer"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func mustVehicle(t *testing.T, id string, cents int64, available bool) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(id, "Fiat 500", "AA-00-BB", booking.NewMoney(cents), available)
	require.NoError(t, err)
	return v
}

func mustCustomer(t *testing.T, id string, status customer.Status) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(id, "Ana Silva", "ana@example.com", status)
	require.NoError(t, err)
	return c
}

func interval(id, vehicleID string, start, end string, status booking.Status) booking.Interval {
	s, _ := time.Parse(time.RFC3339, start)
	e, _ := time.Parse(time.RFC3339, end)
	return booking.Interval{ID: id, VehicleID: vehicleID, Span: booking.Span{Start: s, End: e}, Status: status}
}

func TestQuoteQueries(t *testing.T) {
	base := queries.QuoteInput{
		VehicleID:  "V1",
		PickupDate: "2024-06-01",
		PickupTime: "08:00",
		ReturnDate: "2024-06-03",
		ReturnTime: "10:00",
		Channel:    queries.ChannelAdmin,
	}

	t.Run("uses the vehicle rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		recorder := queriesmock.NewMockRecorder(ctrl)

		backend.EXPECT().GetVehicle(gomock.Any(), "V1").Return(mustVehicle(t, "V1", 8500, true), nil)
		recorder.EXPECT().IncQuote(queries.ChannelAdmin, true)

		q := queries.NewQuoteQueries(backend, booking.NewDefaultPriceCalculator(booking.DefaultPolicy()), recorder)
		view, err := q.Quote(context.Background(), base)
		require.NoError(t, err)

		assert.Equal(t, 3, view.Quote.Price.BillableDays)
		assert.Equal(t, "255.00", view.Quote.Price.TotalAmount.String())
		assert.Equal(t, 3000, view.Quote.Billing.ElapsedMinutes)
	})

	t.Run("admin rate override skips the backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		recorder := queriesmock.NewMockRecorder(ctrl)
		recorder.EXPECT().IncQuote(queries.ChannelAdmin, true)

		in := base
		rate := booking.NewMoney(10000)
		in.DailyRate = &rate

		q := queries.NewQuoteQueries(backend, booking.NewDefaultPriceCalculator(booking.DefaultPolicy()), recorder)
		view, err := q.Quote(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "300.00", view.Quote.Price.TotalAmount.String())
	})

	t.Run("public channel ignores rate override", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		recorder := queriesmock.NewMockRecorder(ctrl)

		backend.EXPECT().GetVehicle(gomock.Any(), "V1").Return(mustVehicle(t, "V1", 8500, true), nil)
		recorder.EXPECT().IncQuote(queries.ChannelPublic, true)

		in := base
		in.Channel = queries.ChannelPublic
		rate := booking.NewMoney(1)
		in.DailyRate = &rate

		q := queries.NewQuoteQueries(backend, booking.NewDefaultPriceCalculator(booking.DefaultPolicy()), recorder)
		view, err := q.Quote(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "255.00", view.Quote.Price.TotalAmount.String())
	})

	t.Run("malformed window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		in := base
		in.PickupTime = "8am"

		q := queries.NewQuoteQueries(queriesmock.NewMockRentalBackend(ctrl), booking.NewDefaultPriceCalculator(booking.DefaultPolicy()), queriesmock.NewMockRecorder(ctrl))
		_, err := q.Quote(context.Background(), in)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidWindow))
		assert.True(t, errs.Is(err, booking.ErrInvalidTimeOfDay))
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		backend.EXPECT().GetVehicle(gomock.Any(), "V1").
			Return(nil, infra.WrapRepoErr(nil, infra.KindNotFound, "vehicle not found", errors.New("404")))

		q := queries.NewQuoteQueries(backend, booking.NewDefaultPriceCalculator(booking.DefaultPolicy()), queriesmock.NewMockRecorder(ctrl))
		_, err := q.Quote(context.Background(), base)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrVehicleNotFound))
	})
}

func TestAvailabilityQueries(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	in := queries.AvailabilityInput{
		VehicleID:  "V1",
		PickupDate: "2024-06-01",
		PickupTime: "08:00",
		ReturnDate: "2024-06-03",
		ReturnTime: "10:00",
	}
	existing := []booking.Interval{
		interval("B1", "V1", "2024-06-02T09:00:00Z", "2024-06-04T09:00:00Z", booking.StatusConfirmed),
		interval("B2", "V1", "2024-06-01T00:00:00Z", "2024-06-05T00:00:00Z", booking.StatusCancelled),
		interval("B3", "V1", "2024-06-03T10:00:00Z", "2024-06-04T10:00:00Z", booking.StatusActive),
	}

	cases := []struct {
		name          string
		excludeID     string
		wantAvailable bool
		wantIDs       []string
	}{
		{name: "confirmed overlap blocks", wantAvailable: false, wantIDs: []string{"B1"}},
		{name: "editing the blocking booking", excludeID: "B1", wantAvailable: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			backend := queriesmock.NewMockRentalBackend(ctrl)
			recorder := queriesmock.NewMockRecorder(ctrl)

			backend.EXPECT().ListVehicleBookings(gomock.Any(), "V1").Return(existing, nil)
			recorder.EXPECT().IncAvailabilityCheck(tc.wantAvailable)

			input := in
			input.ExcludeBookingID = tc.excludeID
			q := queries.NewAvailabilityQueries(backend, booking.DefaultPolicy(), recorder, clock.NewMockClock(now))
			view, err := q.Check(context.Background(), input)
			require.NoError(t, err)

			assert.Equal(t, tc.wantAvailable, view.Available)
			ids := make([]string, 0, len(view.Conflicts))
			for _, c := range view.Conflicts {
				ids = append(ids, c.ID)
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
			assert.Equal(t, now, view.CheckedAt)
			assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), view.Span.Start)
		})
	}

	t.Run("backend down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		backend.EXPECT().ListVehicleBookings(gomock.Any(), "V1").
			Return(nil, infra.WrapRepoErr(nil, infra.KindUnavailable, "backend unavailable", errors.New("503")))

		q := queries.NewAvailabilityQueries(backend, booking.DefaultPolicy(), queriesmock.NewMockRecorder(ctrl), clock.NewMockClock(now))
		_, err := q.Check(context.Background(), in)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrBackendUnavailable))
	})
}

func TestValidationQueries(t *testing.T) {
	form := booking.FormData{
		CustomerID:     "C1",
		VehicleID:      "V1",
		PickupDate:     "2024-06-01",
		ReturnDate:     "2024-06-03",
		PickupTime:     "08:00",
		ReturnTime:     "10:00",
		PickupLocation: "airport",
		ReturnLocation: "harbor",
	}

	setup := func(t *testing.T) (*queriesmock.MockRentalBackend, *queriesmock.MockRecorder) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		backend.EXPECT().ListCustomers(gomock.Any()).Return([]*customer.Customer{
			mustCustomer(t, "C1", customer.StatusActive),
			mustCustomer(t, "C2", customer.StatusInactive),
		}, nil)
		backend.EXPECT().ListVehicles(gomock.Any()).Return([]*vehicle.Vehicle{
			mustVehicle(t, "V1", 8500, true),
			mustVehicle(t, "V2", 9500, false),
		}, nil)
		return backend, queriesmock.NewMockRecorder(ctrl)
	}

	t.Run("valid form reports advisory conflicts", func(t *testing.T) {
		backend, recorder := setup(t)
		backend.EXPECT().ListVehicleBookings(gomock.Any(), "V1").Return([]booking.Interval{
			interval("B1", "V1", "2024-06-02T09:00:00Z", "2024-06-04T09:00:00Z", booking.StatusConfirmed),
		}, nil)

		q := queries.NewValidationQueries(backend, booking.DefaultPolicy(), recorder)
		view, err := q.Validate(context.Background(), form)
		require.NoError(t, err)

		assert.True(t, view.Result.IsValid)
		require.Len(t, view.Result.Conflicts, 1)
		assert.Equal(t, "B1", view.Result.Conflicts[0].ID)
		require.NotNil(t, view.Vehicle)
		assert.Equal(t, int64(8500), view.Vehicle.DailyRate().Cents())
	})

	t.Run("inactive customer and unavailable vehicle", func(t *testing.T) {
		backend, recorder := setup(t)
		backend.EXPECT().ListVehicleBookings(gomock.Any(), "V2").Return(nil, nil)
		recorder.EXPECT().IncValidationFailures(map[string]string{
			booking.FieldCustomerID: booking.MsgCustomerInactive,
			booking.FieldVehicleID:  booking.MsgVehicleUnavailable,
		})

		f := form
		f.CustomerID = "C2"
		f.VehicleID = "V2"
		q := queries.NewValidationQueries(backend, booking.DefaultPolicy(), recorder)
		view, err := q.Validate(context.Background(), f)
		require.NoError(t, err)
		assert.False(t, view.Result.IsValid)
		assert.True(t, errs.Is(view.Result.Err(), booking.ErrValidationFailed))
	})

	t.Run("booking lookup failure does not fail validation", func(t *testing.T) {
		backend, recorder := setup(t)
		backend.EXPECT().ListVehicleBookings(gomock.Any(), "V1").
			Return(nil, infra.WrapRepoErr(nil, infra.KindUnavailable, "backend unavailable", errors.New("timeout")))

		q := queries.NewValidationQueries(backend, booking.DefaultPolicy(), recorder)
		view, err := q.Validate(context.Background(), form)
		require.NoError(t, err)
		assert.True(t, view.Result.IsValid)
		assert.Empty(t, view.Result.Conflicts)
	})

	t.Run("customer list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		backend.EXPECT().ListCustomers(gomock.Any()).
			Return(nil, infra.WrapRepoErr(nil, infra.KindUnauthorized, "token rejected", errors.New("401")))

		q := queries.NewValidationQueries(backend, booking.DefaultPolicy(), queriesmock.NewMockRecorder(ctrl))
		_, err := q.Validate(context.Background(), form)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})
}

func TestContractQueries(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := queries.NewContractQueries(queriesmock.NewMockRentalBackend(ctrl))
		err := q.Download(context.Background(), "  ", nil)
		assert.True(t, errs.Is(err, errs.ErrBookingNotFound))
	})

	t.Run("missing contract", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := queriesmock.NewMockRentalBackend(ctrl)
		backend.EXPECT().DownloadContract(gomock.Any(), "B1", gomock.Any()).
			Return(infra.WrapRepoErr(nil, infra.KindNotFound, "contract not found", errors.New("404")))

		q := queries.NewContractQueries(backend)
		err := q.Download(context.Background(), "B1", nil)
		assert.True(t, errs.Is(err, errs.ErrContractNotFound))
	})
}
