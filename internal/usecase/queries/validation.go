package queries

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/customer"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

// ValidationView carries the lookups used, so callers can reuse the vehicle's rate.
type ValidationView struct {
	Result  booking.ValidationResult
	Vehicle *vehicle.Vehicle
}

type ValidationQueries interface {
	Validate(ctx context.Context, form booking.FormData) (*ValidationView, error)
}

type validationQueriesImpl struct {
	backend   RentalBackend
	validator *booking.Validator
	recorder  Recorder
}

func NewValidationQueries(backend RentalBackend, policy booking.Policy, recorder Recorder) ValidationQueries {
	return &validationQueriesImpl{
		backend:   backend,
		validator: booking.NewValidator(policy),
		recorder:  recorder,
	}
}

// Validate fetches the lookup tables and runs every form rule. An invalid form
// is not an error; only backend failures are.
func (q *validationQueriesImpl) Validate(ctx context.Context, form booking.FormData) (*ValidationView, error) {
	customers, err := q.backend.ListCustomers(ctx)
	if err != nil {
		return nil, shared.MarkBackendError(err, errs.ErrCustomerNotFound)
	}
	vehicles, err := q.backend.ListVehicles(ctx)
	if err != nil {
		return nil, shared.MarkBackendError(err, errs.ErrVehicleNotFound)
	}

	var existing []booking.Interval
	if form.VehicleID != "" {
		existing, err = q.backend.ListVehicleBookings(ctx, form.VehicleID)
		if err != nil {
			// Conflicts are advisory; validation still runs without them.
			slog.WarnContext(ctx, "Could not fetch bookings for conflict hints",
				"vehicle_id", form.VehicleID,
				"error", err)
			existing = nil
		}
	}

	fleet := vehicle.NewFleet(vehicles)
	result := q.validator.Validate(form, customer.NewDirectory(customers), fleet, existing)
	if !result.IsValid {
		q.recorder.IncValidationFailures(result.FieldErrors)
	}

	return &ValidationView{Result: result, Vehicle: fleet[form.VehicleID]}, nil
}
