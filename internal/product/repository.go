package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductList, error)
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}
