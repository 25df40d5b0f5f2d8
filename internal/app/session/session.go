package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentwear/internal/app/outbox"
	"rentwear/internal/clock"
	"rentwear/internal/domain/availability"
	"rentwear/internal/domain/booking"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/loyalty"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

var (
	ErrNoActiveDraft    = errors.New("session: no ready draft to book")
	ErrUnavailableDates = errors.New("session: requested dates overlap a blocked date")
)

type DraftState string

const (
	DraftNone    DraftState = "NONE"
	DraftPending DraftState = "PENDING"
	DraftReady   DraftState = "READY"
)

// Draft is the single in-progress selection for the session. Calculation is
// set only in the READY state; validation failures land in Errors so the
// user's date selection survives for correction.
type Draft struct {
	State       DraftState
	ProductID   catalog.ProductID
	ProductName string
	StartDate   time.Time
	EndDate     time.Time
	Calculation *pricing.Quote
	Errors      []string
}

// Deps wires the session to its collaborators. The calculator is pure; all
// mutable state sits behind the repositories and the session mutex.
type Deps struct {
	Products   catalog.Repository
	Bookings   booking.Repository
	Calendars  availability.Repository
	Profiles   loyalty.Repository
	Calculator *pricing.Calculator
	Clock      clock.Clock
	Outbox     outbox.Outbox
	Logger     *slog.Logger
}

// Session owns one user's draft, loyalty profile, and booking flow. All
// operations take the session mutex, so confirming a booking updates the
// booking store and the profile counters as one step.
type Session struct {
	mu      sync.Mutex
	id      string
	deps    Deps
	profile *loyalty.Profile
	draft   Draft
}

func New(id string, deps Deps, profile *loyalty.Profile) *Session {
	if profile == nil {
		profile = loyalty.NewProfile(id)
	}
	return &Session{id: id, deps: deps, profile: profile, draft: Draft{State: DraftNone}}
}

func (s *Session) ID() string {
	return s.id
}

// Quote prices a rental for this session's loyalty profile without touching
// any state. Recomputing with the same inputs yields an identical result.
func (s *Session) Quote(ctx context.Context, productID catalog.ProductID, start, end time.Time) (pricing.Quote, error) {
	product, err := s.deps.Products.ByID(ctx, productID)
	if err != nil {
		return pricing.Quote{}, err
	}
	dr, err := daterange.New(start, end)
	if err != nil {
		return pricing.Quote{}, pricing.ErrInvalidDateRange
	}
	s.mu.Lock()
	tier, firstTime := s.profile.Tier, s.profile.FirstTime
	s.mu.Unlock()
	return s.deps.Calculator.Quote(pricing.QuoteInput{
		Product:   product,
		Range:     dr,
		Tier:      tier,
		FirstTime: firstTime,
	})
}

// SaveDraft replaces the draft with a fresh selection and recalculates.
// An unknown product is a hard error; date or availability problems are
// absorbed into the draft's error list. The latest call wins.
func (s *Session) SaveDraft(ctx context.Context, productID catalog.ProductID, start, end time.Time) (Draft, error) {
	product, err := s.deps.Products.ByID(ctx, productID)
	if err != nil {
		return Draft{}, err
	}

	draft := Draft{
		State:       DraftPending,
		ProductID:   product.ID,
		ProductName: product.Name,
		StartDate:   start.UTC(),
		EndDate:     end.UTC(),
	}
	if end.IsZero() {
		s.store(draft)
		return draft, nil
	}

	dr, rangeErr := daterange.New(start, end)
	if rangeErr != nil {
		draft.Errors = append(draft.Errors, "end date must be after start date")
		s.store(draft)
		return draft, nil
	}

	calendar, err := s.deps.Calendars.Calendar(ctx, product.ID)
	if err != nil {
		return Draft{}, err
	}
	if !calendar.CanReserve(dr) {
		draft.Errors = append(draft.Errors, "selected dates are no longer available")
	}

	s.mu.Lock()
	tier, firstTime := s.profile.Tier, s.profile.FirstTime
	s.mu.Unlock()
	quote, err := s.deps.Calculator.Quote(pricing.QuoteInput{
		Product:   product,
		Range:     dr,
		Tier:      tier,
		FirstTime: firstTime,
	})
	if err != nil {
		draft.Errors = append(draft.Errors, err.Error())
	}

	if len(draft.Errors) == 0 {
		draft.State = DraftReady
		draft.Calculation = &quote
	}
	s.store(draft)
	return draft, nil
}

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// ClearDraft drops the selection, returning the session to NONE.
func (s *Session) ClearDraft() {
	s.store(Draft{State: DraftNone})
}

// CreateBooking turns a ready draft into a pending booking: reserves the
// calendar, persists the booking, bumps the loyalty counters, records the
// domain events, and clears the draft. Everything happens under the session
// mutex; a storage failure releases the reservation and keeps the draft.
func (s *Session) CreateBooking(ctx context.Context, productID catalog.ProductID, productName string) (booking.BookingID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draft
	if draft.State != DraftReady || draft.Calculation == nil {
		return "", ErrNoActiveDraft
	}
	if productID != "" && productID != draft.ProductID {
		return "", ErrNoActiveDraft
	}
	if productName == "" {
		productName = draft.ProductName
	}

	dr, err := daterange.New(draft.StartDate, draft.EndDate)
	if err != nil {
		return "", pricing.ErrInvalidDateRange
	}
	now := s.deps.Clock.Now()

	b, err := booking.NewBooking(booking.CreateParams{
		ID:          booking.BookingID(uuid.NewString()),
		SessionID:   s.id,
		ProductID:   draft.ProductID,
		ProductName: productName,
		Range:       dr,
		Calculation: *draft.Calculation,
		CreatedAt:   now,
	})
	if err != nil {
		return "", err
	}

	calendar, err := s.deps.Calendars.Calendar(ctx, draft.ProductID)
	if err != nil {
		return "", err
	}
	if err := calendar.Reserve(dr, string(b.ID), now); err != nil {
		return "", ErrUnavailableDates
	}
	if err := s.deps.Calendars.Save(ctx, calendar); err != nil {
		_ = calendar.Release(string(b.ID), now)
		return "", err
	}

	if err := s.deps.Bookings.Save(ctx, b); err != nil {
		_ = calendar.Release(string(b.ID), now)
		_ = s.deps.Calendars.Save(ctx, calendar)
		return "", err
	}

	s.profile.RecordBooking()
	if err := s.deps.Profiles.Save(ctx, s.profile); err != nil {
		s.log().Warn("profile save failed after booking", "booking_id", b.ID, "error", err)
	}

	s.recordEvents(ctx, b, calendar)
	s.draft = Draft{State: DraftNone}
	return b.ID, nil
}

// CancelBooking cancels a pending or confirmed booking owned by this session
// and frees its blocked dates.
func (s *Session) CancelBooking(ctx context.Context, id booking.BookingID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.deps.Bookings.ByID(ctx, id)
	if err != nil {
		return err
	}
	if b.SessionID != s.id {
		return booking.ErrBookingNotFound
	}
	now := s.deps.Clock.Now()
	if err := b.Cancel(reason, now); err != nil {
		return err
	}
	if err := s.deps.Bookings.Save(ctx, b); err != nil {
		return err
	}

	calendar, err := s.deps.Calendars.Calendar(ctx, b.ProductID)
	if err == nil {
		if err := calendar.Release(string(b.ID), now); err == nil {
			_ = s.deps.Calendars.Save(ctx, calendar)
		}
		s.recordEvents(ctx, b, calendar)
		return nil
	}
	s.recordEvents(ctx, b, nil)
	return nil
}

// ConfirmBooking moves a pending booking to confirmed (vendor accepted).
func (s *Session) ConfirmBooking(ctx context.Context, id booking.BookingID) error {
	return s.transition(ctx, id, (*booking.Booking).Confirm)
}

// ActivateBooking marks the rental as picked up.
func (s *Session) ActivateBooking(ctx context.Context, id booking.BookingID) error {
	return s.transition(ctx, id, (*booking.Booking).Activate)
}

// CompleteBooking marks the garment returned; the deposit hold is released
// downstream off the completion event.
func (s *Session) CompleteBooking(ctx context.Context, id booking.BookingID) error {
	return s.transition(ctx, id, (*booking.Booking).Complete)
}

func (s *Session) transition(ctx context.Context, id booking.BookingID, step func(*booking.Booking, time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.deps.Bookings.ByID(ctx, id)
	if err != nil {
		return err
	}
	if b.SessionID != s.id {
		return booking.ErrBookingNotFound
	}
	if err := step(b, s.deps.Clock.Now()); err != nil {
		return err
	}
	if err := s.deps.Bookings.Save(ctx, b); err != nil {
		return err
	}
	s.recordEvents(ctx, b, nil)
	return nil
}

// Bookings lists the session's bookings, newest first per the repository.
func (s *Session) Bookings(ctx context.Context) ([]*booking.Booking, error) {
	return s.deps.Bookings.ListBySession(ctx, s.id)
}

// TotalSavings sums buy-versus-rent savings over all non-cancelled bookings.
func (s *Session) TotalSavings(ctx context.Context) (money.Money, error) {
	list, err := s.deps.Bookings.ListBySession(ctx, s.id)
	if err != nil {
		return money.Money{}, err
	}
	total := money.Money{Currency: money.DefaultCurrency}
	for _, b := range list {
		if b.Cancelled() {
			continue
		}
		savings := b.Calculation.Comparison.Savings
		if savings.Currency != "" {
			total.Currency = savings.Currency
		}
		total.Amount += savings.Amount
	}
	return total, nil
}

// LoyaltyProgress reports rentals completed against the next tier.
func (s *Session) LoyaltyProgress() loyalty.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.TierProgress()
}

// Profile returns a snapshot of the loyalty profile.
func (s *Session) Profile() loyalty.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profile
}

// RecordRating folds a rating into the profile.
func (s *Session) RecordRating(ctx context.Context, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.profile.RecordRating(rating); err != nil {
		return err
	}
	return s.deps.Profiles.Save(ctx, s.profile)
}

func (s *Session) store(draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

func (s *Session) recordEvents(ctx context.Context, b *booking.Booking, calendar *availability.Calendar) {
	evs := b.PendingEvents()
	b.ClearEvents()
	if calendar != nil {
		evs = append(evs, calendar.PendingEvents()...)
		calendar.ClearEvents()
	}
	if err := outbox.RecordDomainEvents(ctx, s.deps.Outbox, outbox.JSONEventEncoder{IDGenerator: uuid.NewString}, evs); err != nil {
		s.log().Warn("outbox record failed", "error", err)
	}
}

func (s *Session) log() *slog.Logger {
	if s.deps.Logger != nil {
		return s.deps.Logger
	}
	return slog.Default()
}
