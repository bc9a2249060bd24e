package queries

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

type AvailabilityInput struct {
	VehicleID        string
	PickupDate       string
	PickupTime       string
	ReturnDate       string
	ReturnTime       string
	ExcludeBookingID string
}

// AvailabilityView is advisory. The backend re-checks at write time.
type AvailabilityView struct {
	VehicleID string
	Available bool
	Conflicts []booking.Interval
	Span      booking.Span
	CheckedAt time.Time
}

type AvailabilityQueries interface {
	Check(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	backend  RentalBackend
	checker  *booking.AvailabilityChecker
	policy   booking.Policy
	recorder Recorder
	clock    clock.Clock
}

func NewAvailabilityQueries(backend RentalBackend, policy booking.Policy, recorder Recorder, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		backend:  backend,
		checker:  booking.NewAvailabilityChecker(policy),
		policy:   policy,
		recorder: recorder,
		clock:    clk,
	}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error) {
	window, err := booking.NewTimeWindow(in.PickupDate, in.PickupTime, in.ReturnDate, in.ReturnTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	existing, err := q.backend.ListVehicleBookings(ctx, in.VehicleID)
	if err != nil {
		return nil, shared.MarkBackendError(err, errs.ErrVehicleNotFound)
	}

	conflicts := q.checker.Conflicts(in.VehicleID, window, existing, in.ExcludeBookingID)
	available := len(conflicts) == 0
	q.recorder.IncAvailabilityCheck(available)

	if !available {
		slog.InfoContext(ctx, "Availability conflict detected",
			"vehicle_id", in.VehicleID,
			"conflicts", len(conflicts))
	}

	return &AvailabilityView{
		VehicleID: in.VehicleID,
		Available: available,
		Conflicts: conflicts,
		Span:      window.Span(q.policy.Location),
		CheckedAt: q.clock.Now().UTC(),
	}, nil
}
