package vehicle

import (
	"errors"
	"strings"

	"rental-booking/internal/domain/booking"
)

var (
	ErrEmptyVehicleID = errors.New("vehicle id cannot be empty")
	ErrNegativeRate   = errors.New("daily rate cannot be negative")
)

// Vehicle is the backend's vehicle record as seen by the booking engine.
type Vehicle struct {
	id           string
	name         string
	licensePlate string
	dailyRate    booking.Money
	available    bool
}

func NewVehicle(id, name, licensePlate string, dailyRate booking.Money, available bool) (*Vehicle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyVehicleID
	}
	if dailyRate.IsNegative() {
		return nil, ErrNegativeRate
	}
	return &Vehicle{
		id:           id,
		name:         strings.TrimSpace(name),
		licensePlate: licensePlate,
		dailyRate:    dailyRate,
		available:    available,
	}, nil
}

func (v *Vehicle) ID() string               { return v.id }
func (v *Vehicle) Name() string             { return v.name }
func (v *Vehicle) LicensePlate() string     { return v.licensePlate }
func (v *Vehicle) DailyRate() booking.Money { return v.dailyRate }
func (v *Vehicle) IsAvailable() bool        { return v.available }

// Fleet indexes vehicles by id and serves as the validator's vehicle directory.
type Fleet map[string]*Vehicle

func NewFleet(vehicles []*Vehicle) Fleet {
	f := make(Fleet, len(vehicles))
	for _, v := range vehicles {
		f[v.id] = v
	}
	return f
}

func (f Fleet) LookupVehicle(id string) (available, ok bool) {
	v, ok := f[id]
	if !ok {
		return false, false
	}
	return v.available, true
}
