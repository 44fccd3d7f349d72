package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps cart slots in Redis. A zero ttl keeps them forever.
type RedisRepository struct {
	cache  *cache.RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisRepository(c *cache.RedisClient, prefix string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{cache: c, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.cache.Client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cart.ErrSlotNotFound
	}
	return val, err
}

func (r *RedisRepository) Set(ctx context.Context, key, value string) error {
	return r.cache.Client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

func (r *RedisRepository) Remove(ctx context.Context, key string) error {
	return r.cache.Client.Del(ctx, r.prefix+key).Err()
}
