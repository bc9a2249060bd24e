package backend

import (
	"encoding/json"
	"fmt"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/customer"
	"rental-booking/internal/domain/vehicle"
	"rental-booking/internal/usecase/shared"
)

type vehicleDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	LicensePlate string      `json:"licensePlate"`
	DailyRate    json.Number `json:"dailyRate"`
	Available    bool        `json:"available"`
}

type customerDTO struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

type bookingDTO struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicleId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
}

type errorDTO struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorDTO) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type createBookingDTO struct {
	CustomerID     string `json:"customerId"`
	VehicleID      string `json:"vehicleId"`
	PickupDate     string `json:"pickupDate"`
	PickupTime     string `json:"pickupTime"`
	ReturnDate     string `json:"returnDate"`
	ReturnTime     string `json:"returnTime"`
	PickupLocation string `json:"pickupLocation"`
	ReturnLocation string `json:"returnLocation"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	BillableDays   int    `json:"billableDays"`
	TotalPrice     string `json:"totalPrice"`
	Status         string `json:"status"`
}

type createdBookingDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func newCreateBookingDTO(b shared.NewBooking) createBookingDTO {
	return createBookingDTO{
		CustomerID:     b.CustomerID,
		VehicleID:      b.VehicleID,
		PickupDate:     b.Window.PickupDate().String(),
		PickupTime:     b.Window.PickupTime().String(),
		ReturnDate:     b.Window.ReturnDate().String(),
		ReturnTime:     b.Window.ReturnTime().String(),
		PickupLocation: b.PickupLocation.String(),
		ReturnLocation: b.ReturnLocation.String(),
		StartDate:      b.Span.Start.Format(time.RFC3339),
		EndDate:        b.Span.End.Format(time.RFC3339),
		BillableDays:   b.Price.BillableDays,
		TotalPrice:     b.Price.TotalAmount.String(),
		Status:         b.Status.String(),
	}
}

func (d createdBookingDTO) toShared(fallback booking.Status) shared.CreatedBooking {
	status, err := booking.NewStatus(d.Status)
	if err != nil {
		status = fallback
	}
	return shared.CreatedBooking{ID: d.ID, Status: status}
}

func parseRate(n json.Number) (booking.Money, error) {
	if n == "" {
		return booking.Money{}, nil
	}
	m, err := booking.ParseMoney(n.String())
	if err == nil {
		return m, nil
	}
	f, ferr := n.Float64()
	if ferr != nil {
		return booking.Money{}, err
	}
	return booking.MoneyFromFloat(f)
}

func (d vehicleDTO) toDomain() (*vehicle.Vehicle, error) {
	rate, err := parseRate(d.DailyRate)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", d.ID, err)
	}
	return vehicle.NewVehicle(d.ID, d.Name, d.LicensePlate, rate, d.Available)
}

func (d customerDTO) toDomain() (*customer.Customer, error) {
	status, err := customer.NewStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", d.ID, err)
	}
	return customer.NewCustomer(d.ID, d.FullName, d.Email, status)
}

func (d bookingDTO) toDomain() (booking.Interval, error) {
	status, err := booking.NewStatus(d.Status)
	if err != nil {
		return booking.Interval{}, fmt.Errorf("booking %s: %w", d.ID, err)
	}
	return booking.Interval{
		ID:        d.ID,
		VehicleID: d.VehicleID,
		Span:      booking.Span{Start: d.StartDate, End: d.EndDate},
		Status:    status,
	}, nil
}
