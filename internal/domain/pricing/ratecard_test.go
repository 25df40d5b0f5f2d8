package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateCard(t *testing.T) {
	t.Run("empty input falls back to defaults", func(t *testing.T) {
		assert.Equal(t, DefaultRateCard(), LoadRateCard("", nil))
	})

	t.Run("malformed JSON falls back to defaults", func(t *testing.T) {
		assert.Equal(t, DefaultRateCard(), LoadRateCard("{not json", nil))
	})

	t.Run("overrides merge onto defaults", func(t *testing.T) {
		cfg := LoadRateCard(`{"tax_percent": 12, "cleaning_fee": 149}`, nil)
		assert.Equal(t, 12, cfg.TaxPercent)
		assert.Equal(t, int64(149), cfg.CleaningFee)
		assert.Equal(t, DefaultRateCard().ServiceFeePercent, cfg.ServiceFeePercent)
	})

	t.Run("regressing bulk tiers are dropped", func(t *testing.T) {
		cfg := LoadRateCard(`{"bulk_tiers":[{"min_days":7,"percent":10},{"min_days":3,"percent":4},{"min_days":10,"percent":2}]}`, nil)
		assert.Equal(t, []BulkTier{{MinDays: 3, Percent: 4}, {MinDays: 7, Percent: 10}}, cfg.BulkTiers)
	})

	t.Run("out of range cap resets to default", func(t *testing.T) {
		cfg := LoadRateCard(`{"discount_cap_percent": 150}`, nil)
		assert.Equal(t, DefaultRateCard().DiscountCapPercent, cfg.DiscountCapPercent)
	})
}

func TestRateCard_BulkPercent(t *testing.T) {
	rc := DefaultRateCard()
	prev := 0
	for days := 1; days <= 30; days++ {
		percent := rc.BulkPercent(days)
		assert.GreaterOrEqual(t, percent, prev, "day %d", days)
		prev = percent
	}
}

func TestRateCard_SeasonalPercentFor(t *testing.T) {
	rc := DefaultRateCard()
	assert.Equal(t, rc.SeasonalPercent, rc.SeasonalPercentFor(time.July))
	assert.Zero(t, rc.SeasonalPercentFor(time.December))
}
