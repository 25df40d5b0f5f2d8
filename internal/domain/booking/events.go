package booking

import (
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

type BookingCreated struct {
	BookingID BookingID
	ProductID catalog.ProductID
	Range     daterange.DateRange
	Total     money.Money
	At        time.Time
}

func (e BookingCreated) EventName() string     { return "rental.booking_created" }
func (e BookingCreated) AggregateID() string   { return string(e.BookingID) }
func (e BookingCreated) OccurredAt() time.Time { return e.At }

type BookingConfirmed struct {
	BookingID BookingID
	ProductID catalog.ProductID
	At        time.Time
}

func (e BookingConfirmed) EventName() string     { return "rental.booking_confirmed" }
func (e BookingConfirmed) AggregateID() string   { return string(e.BookingID) }
func (e BookingConfirmed) OccurredAt() time.Time { return e.At }

type RentalStarted struct {
	BookingID BookingID
	At        time.Time
}

func (e RentalStarted) EventName() string     { return "rental.started" }
func (e RentalStarted) AggregateID() string   { return string(e.BookingID) }
func (e RentalStarted) OccurredAt() time.Time { return e.At }

type RentalCompleted struct {
	BookingID BookingID
	Deposit   money.Money
	At        time.Time
}

func (e RentalCompleted) EventName() string     { return "rental.completed" }
func (e RentalCompleted) AggregateID() string   { return string(e.BookingID) }
func (e RentalCompleted) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	ProductID catalog.ProductID
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "rental.booking_cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
