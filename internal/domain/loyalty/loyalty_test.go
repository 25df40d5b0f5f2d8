package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTier_DiscountPercent(t *testing.T) {
	assert.Equal(t, 0, TierBronze.DiscountPercent())
	assert.Equal(t, 5, TierSilver.DiscountPercent())
	assert.Equal(t, 8, TierGold.DiscountPercent())
	assert.Equal(t, 12, TierPlatinum.DiscountPercent())
	assert.Equal(t, 0, Tier("MYSTERY").DiscountPercent())
}

func TestTier_Next(t *testing.T) {
	next, ok := TierBronze.Next()
	require.True(t, ok)
	assert.Equal(t, TierSilver, next)

	_, ok = TierPlatinum.Next()
	assert.False(t, ok)
}

func TestTierForRentals(t *testing.T) {
	assert.Equal(t, TierBronze, TierForRentals(0))
	assert.Equal(t, TierBronze, TierForRentals(4))
	assert.Equal(t, TierSilver, TierForRentals(5))
	assert.Equal(t, TierGold, TierForRentals(15))
	assert.Equal(t, TierPlatinum, TierForRentals(31))
}

func TestProfile_RecordBooking(t *testing.T) {
	p := NewProfile("sess-1")
	assert.True(t, p.FirstTime)
	assert.Equal(t, TierBronze, p.Tier)

	p.RecordBooking()
	assert.False(t, p.FirstTime)
	assert.Equal(t, 1, p.TotalRentals)

	for i := 0; i < 4; i++ {
		p.RecordBooking()
	}
	assert.Equal(t, 5, p.TotalRentals)
	assert.Equal(t, TierSilver, p.Tier, "tier upgrades at the threshold")
}

func TestProfile_TierProgress(t *testing.T) {
	p := NewProfile("sess-1")
	p.TotalRentals = 3
	progress := p.TierProgress()
	assert.Equal(t, 3, progress.Current)
	assert.Equal(t, 5, progress.Required)
	assert.Equal(t, TierSilver, progress.NextTier)

	p.Tier = TierPlatinum
	p.TotalRentals = 42
	progress = p.TierProgress()
	assert.Equal(t, 42, progress.Current)
	assert.Equal(t, 30, progress.Required)
	assert.Empty(t, string(progress.NextTier))
}

func TestProfile_RecordRating(t *testing.T) {
	p := NewProfile("sess-1")
	assert.ErrorIs(t, p.RecordRating(0), ErrInvalidRating)
	assert.ErrorIs(t, p.RecordRating(6), ErrInvalidRating)

	require.NoError(t, p.RecordRating(5))
	require.NoError(t, p.RecordRating(4))
	assert.InDelta(t, 4.5, p.AverageRating, 0.0001)
}
