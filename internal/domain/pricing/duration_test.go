package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentwear/internal/domain/shared/money"
)

func TestOptimalDuration(t *testing.T) {
	for _, price := range []int64{0, 500, 4999, 5000, 9999, 10000, 19999, 20000, 100000} {
		advice := OptimalDuration(money.Rupees(price))
		assert.GreaterOrEqual(t, advice.Recommended, advice.Minimum, "price %d", price)
		assert.GreaterOrEqual(t, advice.Minimum, 1, "price %d", price)
	}

	// Pricier garments should recommend shorter rentals.
	cheap := OptimalDuration(money.Rupees(2000))
	bridal := OptimalDuration(money.Rupees(38000))
	assert.Greater(t, cheap.Recommended, bridal.Recommended)
}
