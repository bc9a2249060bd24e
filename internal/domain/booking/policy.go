package booking

import "time"

const DefaultMinDurationMinutes = 15

// Policy holds the tunable business rules shared by every booking flow.
type Policy struct {
	LatenessThresholdMinutes int
	MinDurationMinutes       int
	// Location anchors wall-clock windows when they are compared with booking instants.
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		LatenessThresholdMinutes: DefaultLatenessThresholdMinutes,
		MinDurationMinutes:       DefaultMinDurationMinutes,
		Location:                 time.UTC,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
