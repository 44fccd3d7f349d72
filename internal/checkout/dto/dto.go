package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/coupon"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type CouponResponse struct {
	Code    string            `json:"code"`
	Status  coupon.Status     `json:"status"`
	Message string            `json:"message"`
	Coupon  *model.CouponInfo `json:"coupon,omitempty"`
}

// SubmitRequest is the checkout form. The coupon comes from the session.
type SubmitRequest struct {
	model.CheckoutForm
}
