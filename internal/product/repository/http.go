package repository

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/storeapi"
)

type HTTPRepository struct {
	api *storeapi.Client
}

func NewHTTPRepository(api *storeapi.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) FindAll(ctx context.Context, f *dto.ProductFilters) (*dto.ProductList, error) {
	var page storeapi.Page[model.Product]
	if err := r.api.GetJSON(ctx, "/products/", f.Query(), &page); err != nil {
		return nil, err
	}

	list := &dto.ProductList{
		Count:    page.Count,
		Page:     f.Page,
		PageSize: f.PageSize,
		HasNext:  page.Next != nil && *page.Next != "",
		Results:  page.Results,
	}
	if list.Results == nil {
		list.Results = []model.Product{}
	}
	return list, nil
}

func (r *HTTPRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.api.GetJSON(ctx, "/products/"+strconv.FormatInt(id, 10)+"/", nil, &p)
	if err != nil {
		var apiErr *storeapi.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
