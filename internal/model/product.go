package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Unbounded is the stock ceiling used when the catalog does not report stock.
const Unbounded = math.MaxInt32

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	OfferPrice    *decimal.Decimal `json:"offer_price"` // Nullable
	Image         *string          `json:"image,omitempty"`
	Stock         *int             `json:"stock"` // Nil means unbounded
	IsActive      bool             `json:"is_active"`
	Promoted      bool             `json:"promoted"`
	PromotedUntil *time.Time       `json:"promoted_until,omitempty"`
	Category      *Category        `json:"category,omitempty"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
}

// UnitPrice is the offer price when present, otherwise the list price.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.Price
}

// MaxQuantity is the stock ceiling for a cart line of this product.
func (p *Product) MaxQuantity() int {
	if p.Stock == nil {
		return Unbounded
	}
	return *p.Stock
}

// OnSale reports whether the offer price is strictly below the list price.
func (p *Product) OnSale() bool {
	return p.OfferPrice != nil && p.OfferPrice.LessThan(p.Price)
}

func (p *Product) CategoryID() int64 {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}
