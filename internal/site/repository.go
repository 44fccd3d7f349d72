package site

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	GetConfig(ctx context.Context) (*model.SiteConfig, error)
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
}
