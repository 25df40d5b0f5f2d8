package loyalty

import (
	"context"
	"errors"
)

var (
	ErrInvalidRating   = errors.New("loyalty: rating must be between 1 and 5")
	ErrProfileNotFound = errors.New("loyalty: profile not found")
)

// Profile aggregates a renter's loyalty state. TotalRentals only ever grows,
// and FirstTime flips to false exactly once, on the first confirmed booking.
type Profile struct {
	SessionID     string
	Tier          Tier
	TotalRentals  int
	FirstTime     bool
	AverageRating float64
	ratingCount   int
}

func NewProfile(sessionID string) *Profile {
	return &Profile{SessionID: sessionID, Tier: TierBronze, FirstTime: true}
}

// RecordBooking bumps the rental counter and upgrades the tier when a
// threshold is crossed. Tiers never downgrade here.
func (p *Profile) RecordBooking() {
	p.TotalRentals++
	p.FirstTime = false
	if earned := TierForRentals(p.TotalRentals); earned.RentalsRequired() > p.Tier.RentalsRequired() {
		p.Tier = earned
	}
}

// RecordRating folds a user-submitted rating into the running average.
func (p *Profile) RecordRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	total := p.AverageRating*float64(p.ratingCount) + float64(rating)
	p.ratingCount++
	p.AverageRating = total / float64(p.ratingCount)
	return nil
}

// Progress describes how far the profile is from the next tier.
type Progress struct {
	Current  int
	Required int
	NextTier Tier
}

// TierProgress reports rentals completed versus the next tier's requirement.
// At the top tier Required equals the platinum threshold and NextTier is empty.
func (p *Profile) TierProgress() Progress {
	next, ok := p.Tier.Next()
	if !ok {
		return Progress{Current: p.TotalRentals, Required: p.Tier.RentalsRequired()}
	}
	return Progress{Current: p.TotalRentals, Required: next.RentalsRequired(), NextTier: next}
}

type Repository interface {
	BySession(ctx context.Context, sessionID string) (*Profile, error)
	Save(ctx context.Context, profile *Profile) error
}
