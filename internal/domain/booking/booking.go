package booking

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/events"
	"rentwear/internal/domain/shared/money"
)

var (
	ErrInvalidTransition = errors.New("booking: status transition not permitted")
	ErrBookingNotFound   = errors.New("booking: not found")
	ErrSessionRequired   = errors.New("booking: session id required")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Booking is a confirmed rental with its price breakdown frozen at creation
// time; later rate card changes never touch an existing booking.
type Booking struct {
	ID              BookingID
	SessionID       string
	ProductID       catalog.ProductID
	ProductName     string
	Range           daterange.DateRange
	Days            int
	TotalAmount     money.Money
	SecurityDeposit money.Money
	Calculation     pricing.Quote
	Status          Status
	BookingDate     time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListBySession(ctx context.Context, sessionID string) ([]*Booking, error)
}

type CreateParams struct {
	ID          BookingID
	SessionID   string
	ProductID   catalog.ProductID
	ProductName string
	Range       daterange.DateRange
	Calculation pricing.Quote
	CreatedAt   time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.SessionID == "" {
		return nil, ErrSessionRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		SessionID:       params.SessionID,
		ProductID:       params.ProductID,
		ProductName:     params.ProductName,
		Range:           params.Range,
		Days:            params.Range.Days(),
		TotalAmount:     params.Calculation.FinalTotal,
		SecurityDeposit: params.Calculation.SecurityDeposit,
		Calculation:     params.Calculation,
		Status:          StatusPending,
		BookingDate:     now,
		UpdatedAt:       now,
	}
	b.Record(BookingCreated{BookingID: b.ID, ProductID: b.ProductID, Range: b.Range, Total: b.TotalAmount, At: now})
	return b, nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ProductID: b.ProductID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Activate(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = StatusActive
	b.UpdatedAt = now.UTC()
	b.Record(RentalStarted{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusActive {
		return ErrInvalidTransition
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	b.Record(RentalCompleted{BookingID: b.ID, Deposit: b.SecurityDeposit, At: b.UpdatedAt})
	return nil
}

// Cancel is only allowed before the rental starts. An active or finished
// rental stays on the books.
func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidTransition
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ProductID: b.ProductID, Reason: reason, At: b.UpdatedAt})
	return nil
}

// Cancelled reports whether the booking no longer counts toward savings.
func (b *Booking) Cancelled() bool {
	return b.Status == StatusCancelled
}
