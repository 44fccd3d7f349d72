package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/site"
	"go.uber.org/zap"
)

const (
	configCacheKey   = "site:config"
	DefaultConfigTTL = 5 * time.Minute
)

type siteUseCase struct {
	repo   site.Repository
	cache  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

func NewSiteUseCase(repo site.Repository, cache *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) site.UseCase {
	if ttl <= 0 {
		ttl = DefaultConfigTTL
	}
	return &siteUseCase{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *siteUseCase) GetConfig(ctx context.Context) (*model.SiteConfig, error) {
	var cached model.SiteConfig
	hit, err := uc.cache.GetJSON(ctx, configCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("site config cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	cfg, err := uc.repo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetJSON(ctx, configCacheKey, cfg, uc.ttl); err != nil {
		uc.logger.Warn("site config cache write failed", zap.Error(err))
	}
	return cfg, nil
}

func (uc *siteUseCase) ConfigOrDefault(ctx context.Context) *model.SiteConfig {
	cfg, err := uc.GetConfig(ctx)
	if err != nil {
		uc.logger.Warn("site config unavailable, using defaults", zap.Error(err))
		return site.DefaultConfig()
	}
	return cfg
}

// ListAnnouncements is not cached; the catalog filters by time window.
func (uc *siteUseCase) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return uc.repo.ListAnnouncements(ctx)
}
