package queries

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

const (
	ChannelAdmin  = "admin"
	ChannelPublic = "public"
)

type QuoteInput struct {
	VehicleID  string
	PickupDate string
	PickupTime string
	ReturnDate string
	ReturnTime string
	// DailyRate overrides the vehicle's rate. Admin only.
	DailyRate *booking.Money
	Channel   string
}

type QuoteView struct {
	VehicleID string
	Quote     booking.Quote
}

type QuoteQueries interface {
	Quote(ctx context.Context, in QuoteInput) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	backend    RentalBackend
	calculator booking.PriceCalculator
	recorder   Recorder
}

func NewQuoteQueries(backend RentalBackend, calculator booking.PriceCalculator, recorder Recorder) QuoteQueries {
	return &quoteQueriesImpl{
		backend:    backend,
		calculator: calculator,
		recorder:   recorder,
	}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, in QuoteInput) (*QuoteView, error) {
	window, err := booking.NewTimeWindow(in.PickupDate, in.PickupTime, in.ReturnDate, in.ReturnTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	rate, err := q.dailyRate(ctx, in)
	if err != nil {
		return nil, err
	}

	quote, err := q.calculator.Quote(rate, window)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	q.recorder.IncQuote(in.Channel, quote.Billing.LatenessFeeApplied)
	slog.DebugContext(ctx, "Quote computed",
		"vehicle_id", in.VehicleID,
		"elapsed_minutes", quote.Billing.ElapsedMinutes,
		"billable_days", quote.Billing.BillableDays,
		"total_cents", quote.Price.TotalAmount.Cents())

	return &QuoteView{VehicleID: in.VehicleID, Quote: quote}, nil
}

func (q *quoteQueriesImpl) dailyRate(ctx context.Context, in QuoteInput) (booking.Money, error) {
	if in.DailyRate != nil && in.Channel == ChannelAdmin {
		return *in.DailyRate, nil
	}
	if in.VehicleID == "" {
		return booking.Money{}, errs.Mark(errs.New("vehicle id is required for a quote"), errs.ErrVehicleNotFound)
	}

	v, err := q.backend.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		return booking.Money{}, shared.MarkBackendError(err, errs.ErrVehicleNotFound)
	}
	return v.DailyRate(), nil
}
