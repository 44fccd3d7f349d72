package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductList, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// Catalog change hooks, driven by the catalog event listener.
	SyncProduct(ctx context.Context, p *model.Product) error
	RemoveProduct(ctx context.Context, id int64) error
	InvalidateCache(ctx context.Context) error
	Reindex(ctx context.Context) (int, error)
}
