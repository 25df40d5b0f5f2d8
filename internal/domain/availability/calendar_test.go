package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/daterange"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(day(start), day(end))
	require.NoError(t, err)
	return dr
}

func TestCalendar_ReserveAndProbe(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	cal := NewCalendar("prd-anarkali-01")

	require.NoError(t, cal.Reserve(mustRange(t, 10, 15), "bk-1", now))

	assert.False(t, cal.CanReserve(mustRange(t, 12, 14)), "inside booked span")
	assert.False(t, cal.CanReserve(mustRange(t, 8, 10)), "ends on first booked day")
	assert.False(t, cal.CanReserve(mustRange(t, 15, 18)), "starts on last booked day")
	assert.True(t, cal.CanReserve(mustRange(t, 5, 9)))
	assert.True(t, cal.CanReserve(mustRange(t, 16, 20)))

	err := cal.Reserve(mustRange(t, 14, 17), "bk-2", now)
	assert.ErrorIs(t, err, ErrOverlappingRange)
}

func TestCalendar_Release(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	cal := NewCalendar("prd-anarkali-01")
	require.NoError(t, cal.Reserve(mustRange(t, 10, 15), "bk-1", now))

	assert.ErrorIs(t, cal.Release("bk-unknown", now), ErrRangeNotFound)
	require.NoError(t, cal.Release("bk-1", now))
	assert.True(t, cal.CanReserve(mustRange(t, 10, 15)))
}

func TestCalendar_UnavailableDates(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	cal := NewCalendar("prd-anarkali-01")
	require.NoError(t, cal.Reserve(mustRange(t, 10, 15), "bk-1", now))
	require.NoError(t, cal.Reserve(mustRange(t, 20, 21), "bk-2", now))

	dates := cal.UnavailableDates()
	require.Len(t, dates, 8)
	assert.Equal(t, day(10), dates[0])
	assert.Equal(t, day(15), dates[5])
	assert.Equal(t, day(20), dates[6])
	assert.Equal(t, day(21), dates[7])
}

func TestCalendar_Events(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	cal := NewCalendar("prd-anarkali-01")
	require.NoError(t, cal.Reserve(mustRange(t, 10, 15), "bk-1", now))
	require.NoError(t, cal.Release("bk-1", now))

	evs := cal.PendingEvents()
	require.Len(t, evs, 2)
	assert.Equal(t, "availability.dates_blocked", evs[0].EventName())
	assert.Equal(t, "availability.dates_released", evs[1].EventName())
}
