package coupon

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// ErrValidationFailed hides why the coupon service could not answer.
var ErrValidationFailed = errors.New("coupon validation failed")

type Repository interface {
	ValidateCoupon(ctx context.Context, code string) (*model.CouponInfo, error)
}
