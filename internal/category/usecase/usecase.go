package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

const cacheKey = "categories:list"

type categoryUseCase struct {
	repo   category.Repository
	cache  *cache.RedisClient
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewCategoryUseCase serves categories cache-aside. A nil cache disables
// caching.
func NewCategoryUseCase(repo category.Repository, cache *cache.RedisClient, ttl time.Duration, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		uc.logger.Warn("category cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	categories, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, cacheKey, categories, uc.ttl); err != nil {
		uc.logger.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

func (uc *categoryUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Client.Del(ctx, cacheKey).Err()
}
