package site

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	GetConfig(ctx context.Context) (*model.SiteConfig, error)
	// ConfigOrDefault never fails: when the config cannot be read the
	// storefront keeps working with no phone, no alias and free shipping.
	ConfigOrDefault(ctx context.Context) *model.SiteConfig
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
}

func DefaultConfig() *model.SiteConfig {
	return &model.SiteConfig{}
}
