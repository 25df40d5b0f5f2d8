package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New(100, "inr")
	require.NoError(t, err)
	assert.Equal(t, "INR", m.Currency)

	_, err = New(100, "rupees")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestMoney_AddSub(t *testing.T) {
	a := Rupees(900)
	b := Rupees(99)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(999), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(801), diff.Amount)

	_, err = a.Add(Must(5, "USD"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_Percent(t *testing.T) {
	assert.Equal(t, int64(45), Rupees(900).Percent(5).Amount)
	assert.Equal(t, int64(188), Rupees(1044).Percent(18).Amount, "187.92 rounds up")
	assert.Equal(t, int64(40), Rupees(792).Percent(5).Amount, "39.60 rounds up")
	assert.Equal(t, int64(0), Rupees(900).Percent(0).Amount)
	assert.Equal(t, int64(0), Rupees(900).Percent(-5).Amount)
	assert.Equal(t, "INR", Rupees(900).Percent(0).Currency)
}
