package coupon

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Result is what a coupon does to one checkout.
type Result struct {
	// Active is false for a missing or invalid coupon, or one below its
	// minimum subtotal.
	Active       bool
	Discount     decimal.Decimal
	FreeShipping bool
	Shipping     decimal.Decimal
}

// Evaluate applies info to subtotal. Shipping is zero for pickup, zero when
// an active free_shipping coupon waives it, and baseShipping otherwise.
func Evaluate(info *model.CouponInfo, subtotal decimal.Decimal, delivery model.DeliveryMethod, baseShipping decimal.Decimal) Result {
	res := Result{Discount: decimal.Zero, Shipping: baseShipping}
	res.Active = info != nil && info.Valid && !subtotal.LessThan(info.MinSubtotal)

	if res.Active {
		switch info.Type {
		case model.CouponFixed:
			res.Discount = decimal.Min(info.Amount, subtotal)
		case model.CouponPercent:
			raw := subtotal.Mul(info.Percent).Div(hundred)
			if info.PercentCap.IsPositive() {
				raw = decimal.Min(raw, info.PercentCap)
			}
			res.Discount = raw
		case model.CouponFreeShipping:
			res.FreeShipping = true
		}
	}
	if res.Discount.IsNegative() {
		res.Discount = decimal.Zero
	}

	if delivery == model.DeliveryPickup || res.FreeShipping {
		res.Shipping = decimal.Zero
	}
	return res
}

type Status string

const (
	StatusInvalid      Status = "invalid"
	StatusBelowMinimum Status = "below_minimum"
	StatusApplied      Status = "applied"
)

// Check is the feedback shown when a shopper applies a coupon.
func Check(info *model.CouponInfo, subtotal decimal.Decimal) Status {
	switch {
	case info == nil || !info.Valid:
		return StatusInvalid
	case subtotal.LessThan(info.MinSubtotal):
		return StatusBelowMinimum
	default:
		return StatusApplied
	}
}
