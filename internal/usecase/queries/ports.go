package queries

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/customer"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/usecase/shared"
)

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock rental-booking/internal/usecase/queries RentalBackend,Recorder,QuoteQueries,AvailabilityQueries,ValidationQueries,ContractQueries

// RentalBackend is the read side of the rental backend.
type RentalBackend interface {
	ListVehicles(ctx context.Context) ([]*vehicle.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error)
	ListCustomers(ctx context.Context) ([]*customer.Customer, error)
	// ListVehicleBookings returns every booking of the vehicle regardless of status.
	ListVehicleBookings(ctx context.Context, vehicleID string) ([]booking.Interval, error)
	DownloadContract(ctx context.Context, bookingID string, sink shared.BlobSink) error
}

type Recorder interface {
	IncQuote(channel string, latenessFee bool)
	IncAvailabilityCheck(available bool)
	IncValidationFailures(fieldErrors map[string]string)
}
