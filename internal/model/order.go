package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer
}

type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "delivery"
	DeliveryPickup DeliveryMethod = "pickup"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryHome || m == DeliveryPickup
}

type CheckoutForm struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Notes          string         `json:"notes"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderPayload struct {
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	Notes          string             `json:"notes"`
	PaymentMethod  PaymentMethod      `json:"payment_method"`
	DeliveryMethod DeliveryMethod     `json:"delivery_method"`
	Items          []OrderItemPayload `json:"items"`
	CouponCode     string             `json:"coupon_code,omitempty"`
}

type Order struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	Total          decimal.Decimal `json:"total"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	CreatedAt      *time.Time      `json:"created_at"`
}
