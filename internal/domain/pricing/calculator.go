package pricing

import (
	"errors"
	"math"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/loyalty"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

var (
	ErrInvalidDateRange = errors.New("pricing: end date must be after start date")
	ErrProductRequired  = errors.New("pricing: product pricing data required")
)

// QuoteInput carries everything a quote depends on. The calculator is a pure
// function of this struct: same input, bit-identical quote.
type QuoteInput struct {
	Product   *catalog.Product
	Range     daterange.DateRange
	Tier      loyalty.Tier
	FirstTime bool
}

// Breakdown is the pre-fee portion of the quote.
type Breakdown struct {
	DailyRate      money.Money
	Days           int
	Subtotal       money.Money
	TotalDiscounts money.Money
}

// DiscountSet itemizes each discount's currency contribution. The four
// amounts always sum exactly to Breakdown.TotalDiscounts.
type DiscountSet struct {
	Loyalty   money.Money
	Bulk      money.Money
	FirstTime money.Money
	Seasonal  money.Money
}

// Comparison sets the rental total against buying the garment outright.
type Comparison struct {
	BuyPrice       money.Money
	RentPrice      money.Money
	Savings        money.Money
	SavingsPercent float64
}

// Quote is the full itemized result. SecurityDeposit is a refundable hold
// and is not part of FinalTotal.
type Quote struct {
	Breakdown        Breakdown
	Discounts        DiscountSet
	TotalRentalPrice money.Money
	CleaningFee      money.Money
	ServiceFee       money.Money
	Taxes            money.Money
	SecurityDeposit  money.Money
	FinalTotal       money.Money
	Comparison       Comparison
}

// Calculator prices rentals off a rate card. It holds no mutable state and is
// safe for concurrent use.
type Calculator struct {
	rates RateCard
}

func NewCalculator(rates RateCard) *Calculator {
	return &Calculator{rates: rates}
}

func (c *Calculator) Rates() RateCard {
	return c.rates
}

// Quote computes the itemized rental price.
//
// Discounts stack on the original subtotal, not on a shrinking base: each
// percentage is taken of the subtotal independently, with the combined
// percentage trimmed at the rate card's cap. The trim runs in a fixed order
// (loyalty, bulk, first-time, seasonal) so later entries absorb the cut and
// the itemized amounts keep summing to the total.
func (c *Calculator) Quote(input QuoteInput) (Quote, error) {
	if input.Product == nil {
		return Quote{}, ErrProductRequired
	}
	if err := input.Product.Validate(); err != nil {
		return Quote{}, err
	}
	if err := input.Range.Validate(); err != nil {
		return Quote{}, ErrInvalidDateRange
	}

	days := input.Range.Days()
	dailyRate := input.Product.RentPerDay
	subtotal := dailyRate.Multiply(int64(days))

	firstTimePercent := 0
	if input.FirstTime {
		firstTimePercent = c.rates.FirstTimePercent
	}
	percents := [4]int{
		input.Tier.DiscountPercent(),
		c.rates.BulkPercent(days),
		firstTimePercent,
		c.rates.SeasonalPercentFor(input.Range.Start.Month()),
	}
	remaining := c.rates.DiscountCapPercent
	var amounts [4]money.Money
	for i, percent := range percents {
		if percent > remaining {
			percent = remaining
		}
		remaining -= percent
		amounts[i] = subtotal.Percent(percent)
	}
	discounts := DiscountSet{Loyalty: amounts[0], Bulk: amounts[1], FirstTime: amounts[2], Seasonal: amounts[3]}

	totalDiscounts := money.Money{Currency: subtotal.Currency}
	for _, amount := range amounts {
		totalDiscounts, _ = totalDiscounts.Add(amount)
	}
	totalRentalPrice, err := subtotal.Sub(totalDiscounts)
	if err != nil {
		return Quote{}, err
	}

	cleaningFee := money.Money{Amount: c.rates.CleaningFee, Currency: subtotal.Currency}
	serviceFee := totalRentalPrice.Percent(c.rates.ServiceFeePercent)

	taxable := totalRentalPrice
	taxable, _ = taxable.Add(cleaningFee)
	taxable, _ = taxable.Add(serviceFee)
	taxes := taxable.Percent(c.rates.TaxPercent)

	finalTotal, _ := taxable.Add(taxes)
	deposit := input.Product.BuyPrice.Percent(c.rates.DepositPercent)

	return Quote{
		Breakdown: Breakdown{
			DailyRate:      dailyRate,
			Days:           days,
			Subtotal:       subtotal,
			TotalDiscounts: totalDiscounts,
		},
		Discounts:        discounts,
		TotalRentalPrice: totalRentalPrice,
		CleaningFee:      cleaningFee,
		ServiceFee:       serviceFee,
		Taxes:            taxes,
		SecurityDeposit:  deposit,
		FinalTotal:       finalTotal,
		Comparison:       compare(input.Product.BuyPrice, finalTotal),
	}, nil
}

// compare clamps savings at zero; renting is never presented as a negative
// saving without explanation upstream.
func compare(buyPrice, rentPrice money.Money) Comparison {
	savings := money.Money{Currency: buyPrice.Currency}
	if buyPrice.Amount > rentPrice.Amount {
		savings.Amount = buyPrice.Amount - rentPrice.Amount
	}
	percent := 0.0
	if buyPrice.Amount > 0 {
		percent = math.Round(float64(savings.Amount)/float64(buyPrice.Amount)*10000) / 100
	}
	return Comparison{
		BuyPrice:       buyPrice,
		RentPrice:      rentPrice,
		Savings:        savings,
		SavingsPercent: percent,
	}
}
