package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra/metrics"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const submitEndpoint = "POST /bookings"

// ConflictPolicy decides what an advisory conflict does to a submission.
type ConflictPolicy string

const (
	ConflictPolicyWarn   ConflictPolicy = "warn"
	ConflictPolicyReject ConflictPolicy = "reject"
)

func NewConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(s); p {
	case ConflictPolicyWarn, ConflictPolicyReject:
		return p, nil
	default:
		return "", fmt.Errorf("invalid conflict policy %q", s)
	}
}

// ConflictError lists the bookings that overlap a rejected submission.
type ConflictError struct {
	VehicleID string
	Conflicts []booking.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("vehicle %s overlaps %d existing booking(s)", e.VehicleID, len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrBookingConflict
}

type SubmitInput struct {
	Form           booking.FormData
	IdempotencyKey uuid.UUID
	Actor          string
	Channel        string
}

type SubmitResult struct {
	BookingID string
	Status    booking.Status
	Price     booking.PriceQuote
	// Warnings are ids of overlapping bookings accepted under the warn policy.
	Warnings   []string
	IsReplayed bool
}

type SubmissionCommands interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
}

type SubmissionConfig struct {
	ConflictPolicy ConflictPolicy
	IdempotencyTTL time.Duration
}

type submissionCommandsImpl struct {
	validation  queries.ValidationQueries
	calculator  booking.PriceCalculator
	backend     BookingBackend
	idempotency IdempotencyRepository
	recorder    Recorder
	policy      booking.Policy
	cfg         SubmissionConfig
	clock       clock.Clock
}

func NewSubmissionCommands(
	validation queries.ValidationQueries,
	calculator booking.PriceCalculator,
	backend BookingBackend,
	idempotency IdempotencyRepository,
	recorder Recorder,
	policy booking.Policy,
	cfg SubmissionConfig,
	clk clock.Clock,
) SubmissionCommands {
	if cfg.ConflictPolicy == "" {
		cfg.ConflictPolicy = ConflictPolicyWarn
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	return &submissionCommandsImpl{
		validation:  validation,
		calculator:  calculator,
		backend:     backend,
		idempotency: idempotency,
		recorder:    recorder,
		policy:      policy,
		cfg:         cfg,
		clock:       clk,
	}
}

// Submit validates, prices and forwards a booking. A conflict reported by the
// backend is returned to the caller as ErrBookingConflict and never retried.
func (u *submissionCommandsImpl) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if in.IdempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	hash := requestHash(in.Channel, in.Form)
	existing, claimed, err := u.idempotency.Claim(ctx, shared.IdempotencyRecord{
		Key:         in.IdempotencyKey,
		Actor:       in.Actor,
		Endpoint:    submitEndpoint,
		RequestHash: hash,
		ExpiresAt:   u.clock.Now().Add(u.cfg.IdempotencyTTL),
	})
	if err != nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeError)
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if !claimed {
		return u.replay(in, existing, hash)
	}

	result, err := u.submit(ctx, in)
	if err != nil {
		if relErr := u.idempotency.Release(ctx, in.IdempotencyKey, in.Actor); relErr != nil {
			slog.WarnContext(ctx, "Failed to release idempotency key",
				"key", in.IdempotencyKey,
				"error", relErr)
		}
		return nil, err
	}

	body, err := json.Marshal(newStoredResult(result))
	if err == nil {
		err = u.idempotency.MarkCompleted(ctx, in.IdempotencyKey, in.Actor, result.BookingID, body)
	}
	if err != nil {
		// The booking exists upstream; a replay will reach the backend's own
		// idempotency check instead of ours.
		slog.ErrorContext(ctx, "Failed to complete idempotency key",
			"key", in.IdempotencyKey,
			"booking_id", result.BookingID,
			"error", err)
	}
	return result, nil
}

func (u *submissionCommandsImpl) replay(in SubmitInput, existing *shared.IdempotencyRecord, hash string) (*SubmitResult, error) {
	if existing == nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeError)
		return nil, errs.ErrIdempotencyCheckFailed
	}
	if existing.RequestHash != hash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	if !existing.IsCompleted() {
		return nil, errs.ErrIdempotencyInProgress
	}

	var stored storedResult
	if err := json.Unmarshal(existing.ResponseBody, &stored); err != nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeError)
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	u.recorder.IncSubmission(in.Channel, metrics.OutcomeReplayed)

	result := stored.toResult()
	result.IsReplayed = true
	return result, nil
}

func (u *submissionCommandsImpl) submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	view, err := u.validation.Validate(ctx, in.Form)
	if err != nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeError)
		return nil, err
	}
	if !view.Result.IsValid {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeInvalid)
		return nil, view.Result.Err()
	}
	if view.Vehicle == nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeInvalid)
		return nil, errs.ErrVehicleNotFound
	}

	conflicts := view.Result.Conflicts
	if len(conflicts) > 0 && u.cfg.ConflictPolicy == ConflictPolicyReject {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeConflict)
		return nil, &ConflictError{VehicleID: in.Form.VehicleID, Conflicts: conflicts}
	}

	window, err := in.Form.Window()
	if err != nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeInvalid)
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	quote, err := u.calculator.Quote(view.Vehicle.DailyRate(), window)
	if err != nil {
		u.recorder.IncSubmission(in.Channel, metrics.OutcomeInvalid)
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	status := booking.StatusConfirmed
	if in.Channel == queries.ChannelPublic {
		status = booking.StatusPending
	}

	created, err := u.backend.CreateBooking(ctx, shared.NewBooking{
		CustomerID:     in.Form.CustomerID,
		VehicleID:      in.Form.VehicleID,
		Window:         window,
		Span:           window.Span(u.policy.Location),
		PickupLocation: booking.Location(in.Form.PickupLocation),
		ReturnLocation: booking.Location(in.Form.ReturnLocation),
		Price:          quote.Price,
		Status:         status,
	}, in.IdempotencyKey.String())
	if err != nil {
		marked := shared.MarkBackendError(err, errs.ErrVehicleNotFound)
		switch {
		case errs.Is(marked, errs.ErrBookingConflict):
			slog.InfoContext(ctx, "Backend refused booking for a taken slot",
				"vehicle_id", in.Form.VehicleID,
				"pickup", window.PickupDate().String())
			u.recorder.IncSubmission(in.Channel, metrics.OutcomeConflict)
		case errs.Is(marked, errs.ErrBackendRejected):
			u.recorder.IncSubmission(in.Channel, metrics.OutcomeRejected)
		default:
			u.recorder.IncSubmission(in.Channel, metrics.OutcomeError)
		}
		return nil, marked
	}

	u.recorder.IncSubmission(in.Channel, metrics.OutcomeCreated)
	slog.InfoContext(ctx, "Booking submitted",
		"booking_id", created.ID,
		"vehicle_id", in.Form.VehicleID,
		"channel", in.Channel,
		"billable_days", quote.Price.BillableDays,
		"total", quote.Price.TotalAmount.String())

	warnings := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		warnings = append(warnings, c.ID)
	}

	return &SubmitResult{
		BookingID: created.ID,
		Status:    created.Status,
		Price:     quote.Price,
		Warnings:  warnings,
	}, nil
}

func requestHash(channel string, form booking.FormData) string {
	data, _ := json.Marshal(struct {
		Channel string
		Form    booking.FormData
	}{channel, form})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// storedResult is the replayable form of a SubmitResult.
type storedResult struct {
	BookingID          string   `json:"bookingId"`
	Status             string   `json:"status"`
	DailyRateCents     int64    `json:"dailyRateCents"`
	BillableDays       int      `json:"billableDays"`
	BaseAmountCents    int64    `json:"baseAmountCents"`
	SurchargeCents     int64    `json:"latenessSurchargeCents"`
	LatenessFeeApplied bool     `json:"latenessFeeApplied"`
	TotalAmountCents   int64    `json:"totalAmountCents"`
	Warnings           []string `json:"warnings,omitempty"`
}

func newStoredResult(r *SubmitResult) storedResult {
	return storedResult{
		BookingID:          r.BookingID,
		Status:             r.Status.String(),
		DailyRateCents:     r.Price.DailyRate.Cents(),
		BillableDays:       r.Price.BillableDays,
		BaseAmountCents:    r.Price.BaseAmount.Cents(),
		SurchargeCents:     r.Price.LatenessSurcharge.Cents(),
		LatenessFeeApplied: r.Price.LatenessFeeApplied,
		TotalAmountCents:   r.Price.TotalAmount.Cents(),
		Warnings:           r.Warnings,
	}
}

func (s storedResult) toResult() *SubmitResult {
	return &SubmitResult{
		BookingID: s.BookingID,
		Status:    booking.Status(s.Status),
		Price: booking.PriceQuote{
			DailyRate:          booking.NewMoney(s.DailyRateCents),
			BillableDays:       s.BillableDays,
			BaseAmount:         booking.NewMoney(s.BaseAmountCents),
			LatenessSurcharge:  booking.NewMoney(s.SurchargeCents),
			LatenessFeeApplied: s.LatenessFeeApplied,
			TotalAmount:        booking.NewMoney(s.TotalAmountCents),
		},
		Warnings: s.Warnings,
	}
}
