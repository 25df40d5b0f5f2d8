package catalog

import (
	"context"
	"errors"

	"rentwear/internal/domain/shared/money"
)

var (
	ErrProductNotFound = errors.New("catalog: product not found")
	ErrInvalidPricing  = errors.New("catalog: buy price and daily rent must be positive")
)

type ProductID string

// Product carries the pricing facts the rental engine needs. The catalog is
// reference data owned by the marketplace; nothing here mutates it.
type Product struct {
	ID         ProductID
	Name       string
	Vendor     string
	Category   string
	BuyPrice   money.Money
	RentPerDay money.Money
}

func (p *Product) Validate() error {
	if p.BuyPrice.Amount < 0 || p.RentPerDay.Amount <= 0 {
		return ErrInvalidPricing
	}
	if p.BuyPrice.Currency == "" || p.RentPerDay.Currency == "" {
		return money.ErrInvalidCurrency
	}
	if p.BuyPrice.Currency != p.RentPerDay.Currency {
		return money.ErrCurrencyMismatch
	}
	return nil
}

type Repository interface {
	ByID(ctx context.Context, id ProductID) (*Product, error)
	Save(ctx context.Context, product *Product) error
	List(ctx context.Context) ([]*Product, error)
}
