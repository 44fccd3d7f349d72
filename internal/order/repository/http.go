package repository

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
)

var errMissingID = errors.New("order response without id")

type HTTPRepository struct {
	api *storeapi.Client
}

func NewHTTPRepository(api *storeapi.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) CreateOrder(ctx context.Context, payload *model.OrderPayload) (*model.Order, error) {
	var o model.Order
	if err := r.api.PostJSON(ctx, "/orders/", payload, &o); err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, errMissingID
	}
	return &o, nil
}
