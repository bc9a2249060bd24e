package commands

import (
	"context"

	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock rental-booking/internal/usecase/commands BookingBackend,IdempotencyRepository,Recorder,SubmissionCommands

// BookingBackend is the write side of the rental backend. It is the final
// arbiter of conflicts.
type BookingBackend interface {
	CreateBooking(ctx context.Context, b shared.NewBooking, idempotencyKey string) (*shared.CreatedBooking, error)
}

type IdempotencyRepository interface {
	Claim(ctx context.Context, rec shared.IdempotencyRecord) (*shared.IdempotencyRecord, bool, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, actor, backendBookingID string, responseBody []byte) error
	Release(ctx context.Context, key uuid.UUID, actor string) error
}

type Recorder interface {
	IncSubmission(channel, outcome string)
}
