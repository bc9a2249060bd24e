package booking

import "errors"

// Error classes callers match with errors.Is. None of them is fatal.
var (
	ErrInvalidWindow     = errors.New("invalid booking window")
	ErrUnknownReference  = errors.New("unknown reference")
	ErrConflictDetected  = errors.New("booking conflict detected")
	ErrValidationFailed  = errors.New("booking validation failed")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeOfDay  = errors.New("time must be in HH:MM format")
	ErrPickupAfterReturn = errors.New("pickup is after return")
	ErrNegativeRate      = errors.New("daily rate cannot be negative")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidLocation   = errors.New("invalid location")
	ErrInvalidStatus     = errors.New("invalid booking status")
)
