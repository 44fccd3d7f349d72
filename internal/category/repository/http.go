package repository

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
)

type HTTPRepository struct {
	api *storeapi.Client
}

func NewHTTPRepository(api *storeapi.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var page storeapi.Page[model.Category]
	if err := r.api.GetJSON(ctx, "/categories/", nil, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []model.Category{}, nil
	}
	return page.Results, nil
}
