package model

import "github.com/shopspring/decimal"

// CartLine holds the product as it was when added; it is never re-synced
// with the catalog.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l *CartLine) Total() decimal.Decimal {
	return l.Product.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ListTotal prices the line at list price, ignoring any offer.
func (l *CartLine) ListTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
