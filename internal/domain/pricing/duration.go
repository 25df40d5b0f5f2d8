package pricing

import "rentwear/internal/domain/shared/money"

// DurationAdvice seeds recommendation widgets with a rental length for a
// price point. Advisory only: the single invariant is
// Recommended >= Minimum >= 1.
type DurationAdvice struct {
	Recommended int
	Minimum     int
}

// OptimalDuration maps buy-price bands to a suggested rental length.
// High-value pieces turn over best as short, frequent rentals; cheaper items
// only pay for their cleaning overhead on longer stays.
func OptimalDuration(buyPrice money.Money) DurationAdvice {
	switch {
	case buyPrice.Amount >= 20000:
		return DurationAdvice{Recommended: 3, Minimum: 1}
	case buyPrice.Amount >= 10000:
		return DurationAdvice{Recommended: 4, Minimum: 2}
	case buyPrice.Amount >= 5000:
		return DurationAdvice{Recommended: 7, Minimum: 3}
	default:
		return DurationAdvice{Recommended: 10, Minimum: 4}
	}
}
