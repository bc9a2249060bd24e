package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Lookup errors
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrContractNotFound = errors.New("contract not found")

	// Booking errors
	ErrInvalidWindow      = errors.New("invalid booking window")
	ErrValidationFailed   = errors.New("booking validation failed")
	ErrBookingConflict    = errors.New("booking conflict")
	ErrBackendRejected    = errors.New("booking rejected by backend")
	ErrBackendUnavailable = errors.New("rental backend unavailable")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
