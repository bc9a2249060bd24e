//go:build unit || e2e

package builder

import (
	"rental-booking/internal/domain/booking"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
)

type BookingBuilder struct {
	BookingID      string
	CustomerID     string
	VehicleID      string
	PickupDate     string
	PickupTime     string
	ReturnDate     string
	ReturnTime     string
	PickupLocation string
	ReturnLocation string
	DailyRateCents int64
}

// NewBookingBuilder starts from a two-day rental returned two hours late,
// which bills three days.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CustomerID:     "C1",
		VehicleID:      "V1",
		PickupDate:     "2024-06-01",
		PickupTime:     "08:00",
		ReturnDate:     "2024-06-03",
		ReturnTime:     "10:00",
		PickupLocation: string(booking.LocationAirport),
		ReturnLocation: string(booking.LocationCityCenter),
		DailyRateCents: 8500,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithVehicleID(id string) *BookingBuilder {
	b.VehicleID = id
	return b
}

func (b *BookingBuilder) WithCustomerID(id string) *BookingBuilder {
	b.CustomerID = id
	return b
}

func (b *BookingBuilder) WithWindow(pickupDate, pickupTime, returnDate, returnTime string) *BookingBuilder {
	b.PickupDate = pickupDate
	b.PickupTime = pickupTime
	b.ReturnDate = returnDate
	b.ReturnTime = returnTime
	return b
}

func (b *BookingBuilder) WithDailyRateCents(cents int64) *BookingBuilder {
	b.DailyRateCents = cents
	return b
}

// Build methods
func (b *BookingBuilder) BuildFormRequestDTO() reqdto.BookingFormRequest {
	return reqdto.BookingFormRequest{
		BookingID:      b.BookingID,
		CustomerID:     b.CustomerID,
		VehicleID:      b.VehicleID,
		PickupDate:     b.PickupDate,
		ReturnDate:     b.ReturnDate,
		PickupTime:     b.PickupTime,
		ReturnTime:     b.ReturnTime,
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
	}
}

func (b *BookingBuilder) BuildForm() booking.FormData {
	return booking.FormData{
		BookingID:      b.BookingID,
		CustomerID:     b.CustomerID,
		VehicleID:      b.VehicleID,
		PickupDate:     b.PickupDate,
		ReturnDate:     b.ReturnDate,
		PickupTime:     b.PickupTime,
		ReturnTime:     b.ReturnTime,
		PickupLocation: b.PickupLocation,
		ReturnLocation: b.ReturnLocation,
	}
}

func (b *BookingBuilder) BuildQuoteRequestDTO() reqdto.QuoteRequest {
	return reqdto.QuoteRequest{
		VehicleID: b.VehicleID,
		WindowRequest: reqdto.WindowRequest{
			PickupDate: b.PickupDate,
			PickupTime: b.PickupTime,
			ReturnDate: b.ReturnDate,
			ReturnTime: b.ReturnTime,
		},
	}
}

func (b *BookingBuilder) BuildAvailabilityRequestDTO() reqdto.AvailabilityRequest {
	return reqdto.AvailabilityRequest{
		VehicleID: b.VehicleID,
		WindowRequest: reqdto.WindowRequest{
			PickupDate: b.PickupDate,
			PickupTime: b.PickupTime,
			ReturnDate: b.ReturnDate,
			ReturnTime: b.ReturnTime,
		},
		ExcludeBookingID: b.BookingID,
	}
}

func (b *BookingBuilder) BuildQuote() (booking.Quote, error) {
	window, err := booking.NewTimeWindow(b.PickupDate, b.PickupTime, b.ReturnDate, b.ReturnTime)
	if err != nil {
		return booking.Quote{}, err
	}
	return booking.NewDefaultPriceCalculator(booking.DefaultPolicy()).
		Quote(booking.NewMoney(b.DailyRateCents), window)
}

func (b *BookingBuilder) BuildQuoteView() (*queries.QuoteView, error) {
	q, err := b.BuildQuote()
	if err != nil {
		return nil, err
	}
	return &queries.QuoteView{VehicleID: b.VehicleID, Quote: q}, nil
}

func (b *BookingBuilder) BuildSubmitResult(bookingID string, status booking.Status) (*commands.SubmitResult, error) {
	q, err := b.BuildQuote()
	if err != nil {
		return nil, err
	}
	return &commands.SubmitResult{
		BookingID: bookingID,
		Status:    status,
		Price:     q.Price,
	}, nil
}
