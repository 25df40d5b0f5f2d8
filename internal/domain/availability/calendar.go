package availability

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/events"
)

var (
	ErrOverlappingRange = errors.New("availability: range overlaps with an existing block")
	ErrRangeNotFound    = errors.New("availability: range not found")
)

type BlockReason string

const (
	ReasonBooking     BlockReason = "BOOKING"
	ReasonMaintenance BlockReason = "MAINTENANCE"
)

// Block marks a span of rental days as taken, with the booking (or
// maintenance ticket) that owns it.
type Block struct {
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	CreatedAt time.Time
}

// Calendar tracks blocked dates for one product. Both endpoints of a block
// count as occupied days.
type Calendar struct {
	ProductID catalog.ProductID
	Blocks    []Block
	Version   int64
	events.EventRecorder
}

type Repository interface {
	Calendar(ctx context.Context, id catalog.ProductID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(id catalog.ProductID) *Calendar {
	return &Calendar{ProductID: id}
}

// CanReserve reports whether no day in r intersects an existing block.
func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	for _, block := range c.Blocks {
		if block.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// Reserve blocks the range for a booking, refusing overlaps.
func (c *Calendar) Reserve(r daterange.DateRange, bookingID string, now time.Time) error {
	if !c.CanReserve(r) {
		return ErrOverlappingRange
	}
	c.Blocks = append(c.Blocks, Block{Range: r, Reason: ReasonBooking, Reference: bookingID, CreatedAt: now.UTC()})
	c.Record(DatesBlocked{ProductID: c.ProductID, Range: r, Reason: ReasonBooking, At: now.UTC()})
	return nil
}

// Release removes the block held under the given reference.
func (c *Calendar) Release(reference string, now time.Time) error {
	idx := -1
	for i, block := range c.Blocks {
		if block.Reference == reference {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrRangeNotFound
	}
	removed := c.Blocks[idx]
	c.Blocks = append(c.Blocks[:idx], c.Blocks[idx+1:]...)
	c.Record(DatesReleased{ProductID: c.ProductID, Range: removed.Range, At: now.UTC()})
	return nil
}

// UnavailableDates enumerates every blocked calendar day, in block order.
func (c *Calendar) UnavailableDates() []time.Time {
	var dates []time.Time
	for _, block := range c.Blocks {
		dates = append(dates, block.Range.DatesWithin()...)
	}
	return dates
}
