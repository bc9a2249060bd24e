package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	MinutesPerDay  = 24 * 60
	minutesPerHour = 60
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Date is a calendar date without a zone.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %w: %q", ErrInvalidWindow, ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func (d Date) Year() int           { return d.t.Year() }
func (d Date) Month() time.Month   { return d.t.Month() }
func (d Date) Day() int            { return d.t.Day() }
func (d Date) IsZero() bool        { return d.t.IsZero() }
func (d Date) Before(o Date) bool  { return d.t.Before(o.t) }
func (d Date) Equal(o Date) bool   { return d.t.Equal(o.t) }
func (d Date) String() string      { return d.t.Format(DateLayout) }
func (d Date) AddDays(n int) Date  { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) daysSinceEpoch() int { return int(d.t.Unix() / (MinutesPerDay * 60)) }

// TimeOfDay is an HH:MM wall-clock time.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%w: %w: %q", ErrInvalidWindow, ErrInvalidTimeOfDay, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return TimeOfDay{minutes: hour*minutesPerHour + minute}, nil
}

func (t TimeOfDay) Hour() int    { return t.minutes / minutesPerHour }
func (t TimeOfDay) Minute() int  { return t.minutes % minutesPerHour }
func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// TimeWindow is a pickup/return pair in the rental location's wall-clock time.
// Pickup equal to return is accepted here; minimum durations are a validation rule.
type TimeWindow struct {
	pickupDate Date
	pickupTime TimeOfDay
	returnDate Date
	returnTime TimeOfDay
}

func NewTimeWindow(pickupDate, pickupTime, returnDate, returnTime string) (TimeWindow, error) {
	pd, err := ParseDate(pickupDate)
	if err != nil {
		return TimeWindow{}, err
	}
	pt, err := ParseTimeOfDay(pickupTime)
	if err != nil {
		return TimeWindow{}, err
	}
	rd, err := ParseDate(returnDate)
	if err != nil {
		return TimeWindow{}, err
	}
	rt, err := ParseTimeOfDay(returnTime)
	if err != nil {
		return TimeWindow{}, err
	}

	w := TimeWindow{pickupDate: pd, pickupTime: pt, returnDate: rd, returnTime: rt}
	if w.wallMinutes(rd, rt) < w.wallMinutes(pd, pt) {
		return TimeWindow{}, fmt.Errorf("%w: %w: %s %s > %s %s",
			ErrInvalidWindow, ErrPickupAfterReturn, pd, pt, rd, rt)
	}
	return w, nil
}

func (w TimeWindow) PickupDate() Date      { return w.pickupDate }
func (w TimeWindow) PickupTime() TimeOfDay { return w.pickupTime }
func (w TimeWindow) ReturnDate() Date      { return w.returnDate }
func (w TimeWindow) ReturnTime() TimeOfDay { return w.returnTime }

func (w TimeWindow) IsSameDay() bool {
	return w.pickupDate.Equal(w.returnDate)
}

// DurationMinutes is computed on the wall clock, so DST transitions never
// stretch or shrink a rental.
func (w TimeWindow) DurationMinutes() int {
	return w.wallMinutes(w.returnDate, w.returnTime) - w.wallMinutes(w.pickupDate, w.pickupTime)
}

// Span anchors the window in loc for comparison with booking instants.
func (w TimeWindow) Span(loc *time.Location) Span {
	if loc == nil {
		loc = time.UTC
	}
	return Span{
		Start: anchor(w.pickupDate, w.pickupTime, loc),
		End:   anchor(w.returnDate, w.returnTime, loc),
	}
}

func (w TimeWindow) wallMinutes(d Date, t TimeOfDay) int {
	return d.daysSinceEpoch()*MinutesPerDay + t.Minutes()
}

func anchor(d Date, t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// ComputeDurationMinutes parses the raw form values and returns the elapsed minutes.
func ComputeDurationMinutes(pickupDate, pickupTime, returnDate, returnTime string) (int, error) {
	w, err := NewTimeWindow(pickupDate, pickupTime, returnDate, returnTime)
	if err != nil {
		return 0, err
	}
	return w.DurationMinutes(), nil
}
