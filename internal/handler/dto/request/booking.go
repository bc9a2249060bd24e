package request

import (
	"strings"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type WindowRequest struct {
	PickupDate string `json:"pickupDate" binding:"required"`
	PickupTime string `json:"pickupTime" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
	ReturnTime string `json:"returnTime" binding:"required"`
}

type QuoteRequest struct {
	VehicleID string `json:"vehicleId"`
	WindowRequest
	// Decimal string such as "85.00". Honoured for managers only.
	DailyRateOverride *string `json:"dailyRate,omitempty"`
}

func (r QuoteRequest) ToInput(channel string) (queries.QuoteInput, error) {
	in := queries.QuoteInput{Channel: channel}
	if err := copier.Copy(&in, &r); err != nil {
		return queries.QuoteInput{}, err
	}
	in.VehicleID = strings.TrimSpace(r.VehicleID)

	if r.DailyRateOverride != nil && strings.TrimSpace(*r.DailyRateOverride) != "" {
		rate, err := booking.ParseMoney(strings.TrimSpace(*r.DailyRateOverride))
		if err != nil {
			return queries.QuoteInput{}, err
		}
		if rate.IsNegative() {
			return queries.QuoteInput{}, booking.ErrNegativeRate
		}
		in.DailyRate = &rate
	}
	return in, nil
}

func (r QuoteRequest) HasRateOverride() bool {
	return r.DailyRateOverride != nil && strings.TrimSpace(*r.DailyRateOverride) != ""
}

type AvailabilityRequest struct {
	VehicleID string `json:"vehicleId" binding:"required"`
	WindowRequest
	ExcludeBookingID string `json:"excludeBookingId,omitempty"`
}

func (r AvailabilityRequest) ToInput() (queries.AvailabilityInput, error) {
	var in queries.AvailabilityInput
	if err := copier.Copy(&in, &r); err != nil {
		return queries.AvailabilityInput{}, err
	}
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	return in, nil
}

// BookingFormRequest carries the raw form. Field rules are enforced by the
// booking validator, not by binding tags, so every field error is reported.
type BookingFormRequest struct {
	BookingID      string `json:"bookingId,omitempty"`
	CustomerID     string `json:"customerId"`
	VehicleID      string `json:"vehicleId"`
	PickupDate     string `json:"pickupDate"`
	ReturnDate     string `json:"returnDate"`
	PickupTime     string `json:"pickupTime"`
	ReturnTime     string `json:"returnTime"`
	PickupLocation string `json:"pickupLocation"`
	ReturnLocation string `json:"returnLocation"`
}

func (r BookingFormRequest) ToForm() (booking.FormData, error) {
	var form booking.FormData
	if err := copier.Copy(&form, &r); err != nil {
		return booking.FormData{}, err
	}
	return form, nil
}
