package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Repository submits orders to the order service. A rejected order comes
// back as a *storeapi.Error carrying the service's message.
type Repository interface {
	CreateOrder(ctx context.Context, payload *model.OrderPayload) (*model.Order, error)
}
