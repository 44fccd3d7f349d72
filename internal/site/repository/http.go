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

func (r *HTTPRepository) GetConfig(ctx context.Context) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	if err := r.api.GetJSON(ctx, "/config/", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *HTTPRepository) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var page storeapi.Page[model.Announcement]
	if err := r.api.GetJSON(ctx, "/announcements/", nil, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []model.Announcement{}, nil
	}
	return page.Results, nil
}
