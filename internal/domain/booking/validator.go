package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	FieldCustomerID     = "customerId"
	FieldVehicleID      = "vehicleId"
	FieldPickupDate     = "pickupDate"
	FieldReturnDate     = "returnDate"
	FieldPickupTime     = "pickupTime"
	FieldReturnTime     = "returnTime"
	FieldPickupLocation = "pickupLocation"
	FieldReturnLocation = "returnLocation"
)

const (
	MsgRequired           = "is required"
	MsgCustomerNotFound   = "customer not found"
	MsgCustomerInactive   = "customer is not active"
	MsgVehicleNotFound    = "vehicle not found"
	MsgVehicleUnavailable = "vehicle is not available"
	MsgInvalidDate        = "must be a date in YYYY-MM-DD format"
	MsgReturnBeforePickup = "return date must be on or after pickup date"
	MsgInvalidTime        = "must be a time in HH:MM format"
	MsgReturnTimeOrder    = "return time must be after pickup time on same-day bookings"
	MsgInvalidLocation    = "must be one of the rental locations"
)

// FormData is a booking submission as typed by the user.
// BookingID is set when an existing booking is being edited.
type FormData struct {
	BookingID      string
	CustomerID     string
	VehicleID      string
	PickupDate     string
	ReturnDate     string
	PickupTime     string
	ReturnTime     string
	PickupLocation string
	ReturnLocation string
}

func (f FormData) Window() (TimeWindow, error) {
	return NewTimeWindow(f.PickupDate, f.PickupTime, f.ReturnDate, f.ReturnTime)
}

type CustomerDirectory interface {
	LookupCustomer(id string) (active, ok bool)
}

type VehicleDirectory interface {
	LookupVehicle(id string) (available, ok bool)
}

type ValidationResult struct {
	IsValid     bool
	FieldErrors map[string]string
	// Conflicts is advisory and never affects IsValid.
	Conflicts []Interval
}

// Err returns nil for a valid result, otherwise a *ValidationError.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{FieldErrors: r.FieldErrors}
}

type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.FieldErrors[f])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type Validator struct {
	policy  Policy
	checker *AvailabilityChecker
}

func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy, checker: NewAvailabilityChecker(policy)}
}

// Validate runs every rule and collects one message per failing field.
// Availability is not a validation rule; overlapping bookings are only reported
// in Conflicts.
func (v *Validator) Validate(form FormData, customers CustomerDirectory, vehicles VehicleDirectory, existing []Interval) ValidationResult {
	errs := fieldErrors{}

	required := []struct{ field, value string }{
		{FieldCustomerID, form.CustomerID},
		{FieldVehicleID, form.VehicleID},
		{FieldPickupDate, form.PickupDate},
		{FieldReturnDate, form.ReturnDate},
		{FieldPickupTime, form.PickupTime},
		{FieldReturnTime, form.ReturnTime},
		{FieldPickupLocation, form.PickupLocation},
		{FieldReturnLocation, form.ReturnLocation},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.add(r.field, MsgRequired)
		}
	}

	if form.CustomerID != "" {
		v.checkCustomer(errs, form.CustomerID, customers)
	}
	if form.VehicleID != "" {
		v.checkVehicle(errs, form.VehicleID, vehicles)
	}

	pickupDate, pdOK := parseDateField(errs, FieldPickupDate, form.PickupDate)
	returnDate, rdOK := parseDateField(errs, FieldReturnDate, form.ReturnDate)
	datesOrdered := pdOK && rdOK && !returnDate.Before(pickupDate)
	if pdOK && rdOK && !datesOrdered {
		errs.add(FieldReturnDate, MsgReturnBeforePickup)
	}

	pickupTime, ptOK := parseTimeField(errs, FieldPickupTime, form.PickupTime)
	returnTime, rtOK := parseTimeField(errs, FieldReturnTime, form.ReturnTime)

	var window TimeWindow
	windowOK := false
	if datesOrdered && ptOK && rtOK {
		window, windowOK = v.checkDuration(errs, pickupDate, pickupTime, returnDate, returnTime)
	}

	checkLocation(errs, FieldPickupLocation, form.PickupLocation)
	checkLocation(errs, FieldReturnLocation, form.ReturnLocation)

	result := ValidationResult{
		IsValid:     len(errs) == 0,
		FieldErrors: map[string]string(errs),
	}
	if windowOK && form.VehicleID != "" {
		result.Conflicts = v.checker.Conflicts(form.VehicleID, window, existing, form.BookingID)
	}
	return result
}

func (v *Validator) checkCustomer(errs fieldErrors, id string, customers CustomerDirectory) {
	if customers == nil {
		errs.add(FieldCustomerID, MsgCustomerNotFound)
		return
	}
	active, ok := customers.LookupCustomer(id)
	switch {
	case !ok:
		errs.add(FieldCustomerID, MsgCustomerNotFound)
	case !active:
		errs.add(FieldCustomerID, MsgCustomerInactive)
	}
}

func (v *Validator) checkVehicle(errs fieldErrors, id string, vehicles VehicleDirectory) {
	if vehicles == nil {
		errs.add(FieldVehicleID, MsgVehicleNotFound)
		return
	}
	available, ok := vehicles.LookupVehicle(id)
	switch {
	case !ok:
		errs.add(FieldVehicleID, MsgVehicleNotFound)
	case !available:
		errs.add(FieldVehicleID, MsgVehicleUnavailable)
	}
}

func (v *Validator) checkDuration(errs fieldErrors, pd Date, pt TimeOfDay, rd Date, rt TimeOfDay) (TimeWindow, bool) {
	if pd.Equal(rd) && rt.Minutes() <= pt.Minutes() {
		errs.add(FieldReturnTime, MsgReturnTimeOrder)
		return TimeWindow{}, false
	}

	w := TimeWindow{pickupDate: pd, pickupTime: pt, returnDate: rd, returnTime: rt}
	if w.DurationMinutes() < v.policy.MinDurationMinutes {
		errs.add(FieldReturnTime, fmt.Sprintf("booking must last at least %d minutes", v.policy.MinDurationMinutes))
		return w, false
	}
	return w, true
}

func parseDateField(errs fieldErrors, field, value string) (Date, bool) {
	if value == "" {
		return Date{}, false
	}
	d, err := ParseDate(value)
	if err != nil {
		errs.add(field, MsgInvalidDate)
		return Date{}, false
	}
	return d, true
}

func parseTimeField(errs fieldErrors, field, value string) (TimeOfDay, bool) {
	if value == "" {
		return TimeOfDay{}, false
	}
	t, err := ParseTimeOfDay(value)
	if err != nil {
		errs.add(field, MsgInvalidTime)
		return TimeOfDay{}, false
	}
	return t, true
}

func checkLocation(errs fieldErrors, field, value string) {
	if value == "" {
		return
	}
	if !Location(value).IsValid() {
		errs.add(field, MsgInvalidLocation)
	}
}

// fieldErrors keeps the first message reported for each field.
type fieldErrors map[string]string

func (e fieldErrors) add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Validate runs the rules with the default policy.
func Validate(form FormData, customers CustomerDirectory, vehicles VehicleDirectory, existing []Interval) ValidationResult {
	return NewValidator(DefaultPolicy()).Validate(form, customers, vehicles, existing)
}
