package response

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type WindowResponse struct {
	PickupDate      string `json:"pickupDate"`
	PickupTime      string `json:"pickupTime"`
	ReturnDate      string `json:"returnDate"`
	ReturnTime      string `json:"returnTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

type BillingResponse struct {
	ElapsedMinutes     int  `json:"elapsedMinutes"`
	FullDayBlocks      int  `json:"fullDayBlocks"`
	LatenessMinutes    int  `json:"latenessMinutes"`
	LatenessFeeApplied bool `json:"latenessFeeApplied"`
	BillableDays       int  `json:"billableDays"`
}

// PriceResponse renders amounts as two-decimal strings.
type PriceResponse struct {
	DailyRate          string `json:"dailyRate"`
	BillableDays       int    `json:"billableDays"`
	BaseAmount         string `json:"baseAmount"`
	LatenessSurcharge  string `json:"latenessSurcharge"`
	LatenessFeeApplied bool   `json:"latenessFeeApplied"`
	TotalAmount        string `json:"totalAmount"`
	TotalAmountCents   int64  `json:"totalAmountCents"`
}

type QuoteResponse struct {
	VehicleID string          `json:"vehicleId,omitempty"`
	Window    WindowResponse  `json:"window"`
	Billing   BillingResponse `json:"billing"`
	Price     PriceResponse   `json:"price"`
}

type ConflictResponse struct {
	BookingID string    `json:"bookingId"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

type AvailabilityResponse struct {
	VehicleID string             `json:"vehicleId"`
	Available bool               `json:"available"`
	Conflicts []ConflictResponse `json:"conflicts"`
	CheckedAt time.Time          `json:"checkedAt"`
}

type ValidationResponse struct {
	IsValid     bool               `json:"isValid"`
	FieldErrors map[string]string  `json:"fieldErrors"`
	Conflicts   []ConflictResponse `json:"conflicts"`
}

type BookingResponse struct {
	BookingID string        `json:"bookingId"`
	Status    string        `json:"status"`
	Price     PriceResponse `json:"price"`
	Warnings  []string      `json:"warnings"`
	Replayed  bool          `json:"replayed"`
}

func FromWindow(w booking.TimeWindow) WindowResponse {
	return WindowResponse{
		PickupDate:      w.PickupDate().String(),
		PickupTime:      w.PickupTime().String(),
		ReturnDate:      w.ReturnDate().String(),
		ReturnTime:      w.ReturnTime().String(),
		DurationMinutes: w.DurationMinutes(),
	}
}

func FromBilling(b booking.BillingResult) BillingResponse {
	var res BillingResponse
	_ = copier.Copy(&res, &b)
	return res
}

func FromPrice(p booking.PriceQuote) PriceResponse {
	return PriceResponse{
		DailyRate:          p.DailyRate.String(),
		BillableDays:       p.BillableDays,
		BaseAmount:         p.BaseAmount.String(),
		LatenessSurcharge:  p.LatenessSurcharge.String(),
		LatenessFeeApplied: p.LatenessFeeApplied,
		TotalAmount:        p.TotalAmount.String(),
		TotalAmountCents:   p.TotalAmount.Cents(),
	}
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		VehicleID: v.VehicleID,
		Window:    FromWindow(v.Quote.Window),
		Billing:   FromBilling(v.Quote.Billing),
		Price:     FromPrice(v.Quote.Price),
	}
}

func FromConflicts(intervals []booking.Interval) []ConflictResponse {
	res := make([]ConflictResponse, len(intervals))
	for i, it := range intervals {
		res[i] = ConflictResponse{
			BookingID: it.ID,
			Status:    it.Status.String(),
			Start:     it.Span.Start,
			End:       it.Span.End,
		}
	}
	return res
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		VehicleID: v.VehicleID,
		Available: v.Available,
		Conflicts: FromConflicts(v.Conflicts),
		CheckedAt: v.CheckedAt,
	}
}

func FromValidationResult(r booking.ValidationResult) *ValidationResponse {
	fieldErrors := r.FieldErrors
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	return &ValidationResponse{
		IsValid:     r.IsValid,
		FieldErrors: fieldErrors,
		Conflicts:   FromConflicts(r.Conflicts),
	}
}

func FromSubmitResult(r *commands.SubmitResult) *BookingResponse {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &BookingResponse{
		BookingID: r.BookingID,
		Status:    r.Status.String(),
		Price:     FromPrice(r.Price),
		Warnings:  warnings,
		Replayed:  r.IsReplayed,
	}
}
