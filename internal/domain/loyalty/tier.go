package loyalty

// Tier is the closed set of loyalty levels. Keeping it an enumeration with
// exhaustive switches means a new tier cannot be silently mis-typed the way
// a free-form string key could.
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Tiers lists all tiers in ascending benefit order.
func Tiers() []Tier {
	return []Tier{TierBronze, TierSilver, TierGold, TierPlatinum}
}

func (t Tier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// DiscountPercent maps a tier to its rental discount. Unknown tiers get the
// bronze treatment rather than a hidden zero-value surprise elsewhere.
func (t Tier) DiscountPercent() int {
	switch t {
	case TierSilver:
		return 5
	case TierGold:
		return 8
	case TierPlatinum:
		return 12
	default:
		return 0
	}
}

// RentalsRequired returns the completed-rental count needed to hold the tier.
func (t Tier) RentalsRequired() int {
	switch t {
	case TierSilver:
		return 5
	case TierGold:
		return 15
	case TierPlatinum:
		return 30
	default:
		return 0
	}
}

// Next returns the tier above, or the receiver and false at the top.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierBronze:
		return TierSilver, true
	case TierSilver:
		return TierGold, true
	case TierGold:
		return TierPlatinum, true
	default:
		return t, false
	}
}

// TierForRentals derives the tier earned by a completed-rental count.
func TierForRentals(total int) Tier {
	tier := TierBronze
	for _, t := range Tiers() {
		if total >= t.RentalsRequired() {
			tier = t
		}
	}
	return tier
}
