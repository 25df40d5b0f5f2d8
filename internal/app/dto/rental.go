package dto

import (
	"time"

	"rentwear/internal/app/session"
	"rentwear/internal/domain/booking"
	"rentwear/internal/domain/loyalty"
	"rentwear/internal/domain/pricing"
)

type QuoteBreakdown struct {
	DailyRate      int64 `json:"daily_rate"`
	NumberOfDays   int   `json:"number_of_days"`
	Subtotal       int64 `json:"subtotal"`
	TotalDiscounts int64 `json:"total_discounts"`
}

type QuoteDiscounts struct {
	LoyaltyDiscount   int64 `json:"loyalty_discount"`
	BulkDiscount      int64 `json:"bulk_discount"`
	FirstTimeDiscount int64 `json:"first_time_discount"`
	SeasonalDiscount  int64 `json:"seasonal_discount"`
}

type PriceComparison struct {
	BuyPrice          int64   `json:"buy_price"`
	RentPrice         int64   `json:"rent_price"`
	Savings           int64   `json:"savings"`
	SavingsPercentage float64 `json:"savings_percentage"`
}

type QuoteResponse struct {
	Currency         string          `json:"currency"`
	Breakdown        QuoteBreakdown  `json:"breakdown"`
	Discounts        QuoteDiscounts  `json:"discounts"`
	TotalRentalPrice int64           `json:"total_rental_price"`
	CleaningFee      int64           `json:"cleaning_fee"`
	ServiceFee       int64           `json:"service_fee"`
	Taxes            int64           `json:"taxes"`
	SecurityDeposit  int64           `json:"security_deposit"`
	FinalTotal       int64           `json:"final_total"`
	PriceComparison  PriceComparison `json:"price_comparison"`
}

func NewQuoteResponse(q pricing.Quote) QuoteResponse {
	return QuoteResponse{
		Currency: q.Breakdown.Subtotal.Currency,
		Breakdown: QuoteBreakdown{
			DailyRate:      q.Breakdown.DailyRate.Amount,
			NumberOfDays:   q.Breakdown.Days,
			Subtotal:       q.Breakdown.Subtotal.Amount,
			TotalDiscounts: q.Breakdown.TotalDiscounts.Amount,
		},
		Discounts: QuoteDiscounts{
			LoyaltyDiscount:   q.Discounts.Loyalty.Amount,
			BulkDiscount:      q.Discounts.Bulk.Amount,
			FirstTimeDiscount: q.Discounts.FirstTime.Amount,
			SeasonalDiscount:  q.Discounts.Seasonal.Amount,
		},
		TotalRentalPrice: q.TotalRentalPrice.Amount,
		CleaningFee:      q.CleaningFee.Amount,
		ServiceFee:       q.ServiceFee.Amount,
		Taxes:            q.Taxes.Amount,
		SecurityDeposit:  q.SecurityDeposit.Amount,
		FinalTotal:       q.FinalTotal.Amount,
		PriceComparison: PriceComparison{
			BuyPrice:          q.Comparison.BuyPrice.Amount,
			RentPrice:         q.Comparison.RentPrice.Amount,
			Savings:           q.Comparison.Savings.Amount,
			SavingsPercentage: q.Comparison.SavingsPercent,
		},
	}
}

type DraftResponse struct {
	State       string         `json:"state"`
	ProductID   string         `json:"product_id,omitempty"`
	ProductName string         `json:"product_name,omitempty"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Calculation *QuoteResponse `json:"calculation,omitempty"`
	Errors      []string       `json:"errors,omitempty"`
}

func NewDraftResponse(d session.Draft) DraftResponse {
	resp := DraftResponse{
		State:       string(d.State),
		ProductID:   string(d.ProductID),
		ProductName: d.ProductName,
		Errors:      d.Errors,
	}
	if !d.StartDate.IsZero() {
		start := d.StartDate
		resp.StartDate = &start
	}
	if !d.EndDate.IsZero() {
		end := d.EndDate
		resp.EndDate = &end
	}
	if d.Calculation != nil {
		calc := NewQuoteResponse(*d.Calculation)
		resp.Calculation = &calc
	}
	return resp
}

type BookingResponse struct {
	ID              string        `json:"id"`
	ProductID       string        `json:"product_id"`
	ProductName     string        `json:"product_name"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	Days            int           `json:"days"`
	TotalAmount     int64         `json:"total_amount"`
	SecurityDeposit int64         `json:"security_deposit"`
	Calculation     QuoteResponse `json:"calculation"`
	Status          string        `json:"status"`
	BookingDate     time.Time     `json:"booking_date"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              string(b.ID),
		ProductID:       string(b.ProductID),
		ProductName:     b.ProductName,
		StartDate:       b.Range.Start,
		EndDate:         b.Range.End,
		Days:            b.Days,
		TotalAmount:     b.TotalAmount.Amount,
		SecurityDeposit: b.SecurityDeposit.Amount,
		Calculation:     NewQuoteResponse(b.Calculation),
		Status:          string(b.Status),
		BookingDate:     b.BookingDate,
	}
}

type DurationAdviceResponse struct {
	Recommended int `json:"recommended"`
	Minimum     int `json:"minimum"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type UnavailableDatesResponse struct {
	Dates []time.Time `json:"dates"`
}

type SavingsResponse struct {
	Currency     string `json:"currency"`
	TotalSavings int64  `json:"total_savings"`
}

type LoyaltyProgressResponse struct {
	Tier     string `json:"tier"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
	NextTier string `json:"next_tier,omitempty"`
}

func NewLoyaltyProgressResponse(tier loyalty.Tier, p loyalty.Progress) LoyaltyProgressResponse {
	return LoyaltyProgressResponse{
		Tier:     string(tier),
		Current:  p.Current,
		Required: p.Required,
		NextTier: string(p.NextTier),
	}
}
