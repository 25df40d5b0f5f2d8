package pricing

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// BulkTier grants Percent off once a rental reaches MinDays.
type BulkTier struct {
	MinDays int `json:"min_days"`
	Percent int `json:"percent"`
}

// RateCard holds every tunable the calculator consumes. Values live in
// configuration, not code, because merchandising owns them.
type RateCard struct {
	Currency           string     `json:"currency"`
	FirstTimePercent   int        `json:"first_time_percent"`
	SeasonalPercent    int        `json:"seasonal_percent"`
	OffSeasonMonths    []int      `json:"off_season_months"`
	BulkTiers          []BulkTier `json:"bulk_tiers"`
	DiscountCapPercent int        `json:"discount_cap_percent"`
	CleaningFee        int64      `json:"cleaning_fee"`
	ServiceFeePercent  int        `json:"service_fee_percent"`
	TaxPercent         int        `json:"tax_percent"`
	DepositPercent     int        `json:"deposit_percent"`
}

// DefaultRateCard returns the production defaults: 18% GST, 5% service fee,
// a flat cleaning fee, 20% refundable deposit, and monsoon-season months
// (between wedding seasons) as the off-peak window.
func DefaultRateCard() RateCard {
	return RateCard{
		Currency:           "INR",
		FirstTimePercent:   10,
		SeasonalPercent:    15,
		OffSeasonMonths:    []int{6, 7, 8, 9},
		BulkTiers:          []BulkTier{{MinDays: 4, Percent: 5}, {MinDays: 7, Percent: 10}, {MinDays: 14, Percent: 15}},
		DiscountCapPercent: 40,
		CleaningFee:        99,
		ServiceFeePercent:  5,
		TaxPercent:         18,
		DepositPercent:     20,
	}
}

// LoadRateCard parses a JSON rate card, falling back to defaults on empty or
// malformed input. Missing sections inherit the default values.
func LoadRateCard(raw string, logger *slog.Logger) RateCard {
	if strings.TrimSpace(raw) == "" {
		return DefaultRateCard()
	}

	cfg := DefaultRateCard()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		if logger != nil {
			logger.Warn("invalid RATE_CARD JSON, using defaults", "error", err)
		}
		return DefaultRateCard()
	}
	cfg.normalize()
	return cfg
}

func (rc *RateCard) normalize() {
	if rc.Currency == "" {
		rc.Currency = DefaultRateCard().Currency
	}
	if rc.DiscountCapPercent <= 0 || rc.DiscountCapPercent > 100 {
		rc.DiscountCapPercent = DefaultRateCard().DiscountCapPercent
	}
	sort.Slice(rc.BulkTiers, func(i, j int) bool { return rc.BulkTiers[i].MinDays < rc.BulkTiers[j].MinDays })
	// Longer rentals must never earn less; drop tiers that would regress.
	kept := rc.BulkTiers[:0]
	best := 0
	for _, tier := range rc.BulkTiers {
		if tier.Percent < best {
			continue
		}
		best = tier.Percent
		kept = append(kept, tier)
	}
	rc.BulkTiers = kept
}

// BulkPercent returns the discount earned by a rental of the given length.
func (rc RateCard) BulkPercent(days int) int {
	percent := 0
	for _, tier := range rc.BulkTiers {
		if days >= tier.MinDays {
			percent = tier.Percent
		}
	}
	return percent
}

// SeasonalPercentFor returns the off-season discount for a start month.
func (rc RateCard) SeasonalPercentFor(month time.Month) int {
	for _, m := range rc.OffSeasonMonths {
		if time.Month(m) == month {
			return rc.SeasonalPercent
		}
	}
	return 0
}
