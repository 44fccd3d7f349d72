package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// SetQuantityRequest takes either a number or the raw text typed into the
// quantity field. Input wins when both are sent.
type SetQuantityRequest struct {
	Quantity *int    `json:"quantity"`
	Input    *string `json:"input"`
}

type VisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

type CartResponse struct {
	Lines    []model.CartLine `json:"lines"`
	Subtotal decimal.Decimal  `json:"subtotal"`
	Count    int              `json:"count"`
	Notices  []cart.Notice    `json:"notices"`
	// Quantity is the line quantity after an add or update.
	Quantity *int `json:"quantity,omitempty"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

func NewCartResponse(s *cart.Store, notices []cart.Notice) *CartResponse {
	return &CartResponse{
		Lines:    s.Lines(),
		Subtotal: s.Subtotal(),
		Count:    s.Count(),
		Notices:  notices,
	}
}
