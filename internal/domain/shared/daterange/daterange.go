package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: end date must be after start date")

const day = 24 * time.Hour

// DateRange represents a rental interval. Both endpoints are rental days:
// a garment picked up on Start and returned on End occupies every calendar
// day in between, so overlap checks treat the interval as closed.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: start.UTC(), End: end.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the chargeable day count, ceil of the span in days with a
// floor of one. A valid range never yields less than one day.
func (dr DateRange) Days() int {
	span := dr.End.Sub(dr.Start)
	days := int(span / day)
	if span%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// Overlaps reports whether any rental day is shared between the two ranges.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.End.Before(other.Start) && !other.End.Before(dr.Start)
}

// ContainsDate reports whether t falls on one of the range's rental days.
func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.Start) && !t.After(dr.End)
}

// DatesWithin enumerates every calendar day covered by the range, at
// day granularity starting from Start.
func (dr DateRange) DatesWithin() []time.Time {
	var dates []time.Time
	for d := dr.Start; !d.After(dr.End); d = d.Add(day) {
		dates = append(dates, d)
	}
	return dates
}
