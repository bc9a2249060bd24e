package shared

import (
	"io"
	"time"

	"rental-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type IdempotencyStatus string

const (
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	IdempotencyStatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord remembers one booking submission per (key, actor).
type IdempotencyRecord struct {
	Key              uuid.UUID
	Actor            string
	Endpoint         string
	RequestHash      string
	Status           IdempotencyStatus
	BackendBookingID *string
	ResponseBody     []byte
	ExpiresAt        time.Time
	CreatedAt        time.Time
}

func (r IdempotencyRecord) IsCompleted() bool {
	return r.Status == IdempotencyStatusCompleted
}

// BlobSink receives a downloaded file, for example a rental contract PDF.
type BlobSink interface {
	SaveBlob(filename, contentType string, r io.Reader) error
}

// NewBooking is a validated, priced booking ready to be sent to the backend.
type NewBooking struct {
	CustomerID     string
	VehicleID      string
	Window         booking.TimeWindow
	Span           booking.Span
	PickupLocation booking.Location
	ReturnLocation booking.Location
	Price          booking.PriceQuote
	Status         booking.Status
}

type CreatedBooking struct {
	ID     string
	Status booking.Status
}
