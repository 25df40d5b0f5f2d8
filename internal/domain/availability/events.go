package availability

import (
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
)

type DatesBlocked struct {
	ProductID catalog.ProductID
	Range     daterange.DateRange
	Reason    BlockReason
	At        time.Time
}

func (e DatesBlocked) EventName() string     { return "availability.dates_blocked" }
func (e DatesBlocked) AggregateID() string   { return string(e.ProductID) }
func (e DatesBlocked) OccurredAt() time.Time { return e.At }

type DatesReleased struct {
	ProductID catalog.ProductID
	Range     daterange.DateRange
	At        time.Time
}

func (e DatesReleased) EventName() string     { return "availability.dates_released" }
func (e DatesReleased) AggregateID() string   { return string(e.ProductID) }
func (e DatesReleased) OccurredAt() time.Time { return e.At }
