package booking

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// BlocksAvailability reports whether a booking in this status occupies its vehicle.
// Pending bookings do not hold the slot.
func (s Status) BlocksAvailability() bool {
	return s == StatusConfirmed || s == StatusActive
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Span is a half-open [Start, End) range of instants.
type Span struct {
	Start time.Time
	End   time.Time
}

func (s Span) Overlaps(o Span) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

// Interval is an existing booking's occupation of a vehicle.
type Interval struct {
	ID        string
	VehicleID string
	Span      Span
	Status    Status
}

// FindConflicts returns the blocking bookings of vehicleID that overlap candidate.
// A booking whose ID equals excludeID is ignored so an edited booking does not
// conflict with itself.
func FindConflicts(vehicleID string, candidate Span, existing []Interval, excludeID string) []Interval {
	var conflicts []Interval
	for _, b := range existing {
		if b.VehicleID != vehicleID || !b.Status.BlocksAvailability() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if candidate.Overlaps(b.Span) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// IsAvailable is advisory: it only sees the snapshot it is given.
func IsAvailable(vehicleID string, candidate Span, existing []Interval, excludeID string) bool {
	return len(FindConflicts(vehicleID, candidate, existing, excludeID)) == 0
}

type AvailabilityChecker struct {
	policy Policy
}

func NewAvailabilityChecker(policy Policy) *AvailabilityChecker {
	return &AvailabilityChecker{policy: policy}
}

func (c *AvailabilityChecker) Conflicts(vehicleID string, window TimeWindow, existing []Interval, excludeID string) []Interval {
	return FindConflicts(vehicleID, window.Span(c.policy.location()), existing, excludeID)
}

func (c *AvailabilityChecker) IsAvailable(vehicleID string, window TimeWindow, existing []Interval, excludeID string) bool {
	return len(c.Conflicts(vehicleID, window, existing, excludeID)) == 0
}
