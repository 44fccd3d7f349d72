package model

import "github.com/shopspring/decimal"

type CouponType string

const (
	CouponFixed        CouponType = "fixed"
	CouponPercent      CouponType = "percent"
	CouponFreeShipping CouponType = "free_shipping"
)

type CouponInfo struct {
	Valid       bool            `json:"valid"`
	Type        CouponType      `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Percent     decimal.Decimal `json:"percent"`
	PercentCap  decimal.Decimal `json:"percent_cap"`
	MinSubtotal decimal.Decimal `json:"min_subtotal"`
	Name        string          `json:"name,omitempty"`
}
