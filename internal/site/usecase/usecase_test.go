package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	cfg   *model.SiteConfig
	err   error
	calls int
}

func (f *fakeRepo) GetConfig(context.Context) (*model.SiteConfig, error) {
	f.calls++
	return f.cfg, f.err
}

func (f *fakeRepo) ListAnnouncements(context.Context) ([]model.Announcement, error) {
	return []model.Announcement{{ID: 1}}, f.err
}

func TestConfigIsCachedForTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	repo := &fakeRepo{cfg: &model.SiteConfig{WhatsAppPhone: "123", ShippingCost: decimal.NewFromInt(800)}}
	uc := NewSiteUseCase(repo, rc, 0, logger.NewNop())
	ctx := context.Background()

	cfg, err := uc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "123", cfg.WhatsAppPhone)

	cfg, err = uc.GetConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.ShippingCost.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, DefaultConfigTTL, mr.TTL(configCacheKey))

	mr.FastForward(DefaultConfigTTL + time.Second)
	_, _ = uc.GetConfig(ctx)
	assert.Equal(t, 2, repo.calls)
}

func TestConfigOrDefault(t *testing.T) {
	uc := NewSiteUseCase(&fakeRepo{err: errors.New("down")}, nil, time.Minute, logger.NewNop())

	cfg := uc.ConfigOrDefault(context.Background())
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.WhatsAppPhone)
	assert.Empty(t, cfg.AliasOrCBU)
	assert.True(t, cfg.ShippingCost.IsZero())

	_, err := uc.GetConfig(context.Background())
	assert.Error(t, err)
}

func TestListAnnouncements(t *testing.T) {
	uc := NewSiteUseCase(&fakeRepo{}, nil, time.Minute, logger.NewNop())
	got, err := uc.ListAnnouncements(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
