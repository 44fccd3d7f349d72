package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/coupon"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
)

type HTTPRepository struct {
	api *storeapi.Client
}

func NewHTTPRepository(api *storeapi.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

// ValidateCoupon asks the coupon service about code. A blank code is
// answered locally as invalid.
func (r *HTTPRepository) ValidateCoupon(ctx context.Context, code string) (*model.CouponInfo, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &model.CouponInfo{Valid: false}, nil
	}

	var info model.CouponInfo
	if err := r.api.PostJSON(ctx, "/coupons/validate/", map[string]string{"code": code}, &info); err != nil {
		return nil, fmt.Errorf("%w: %w", coupon.ErrValidationFailed, err)
	}
	return &info, nil
}
