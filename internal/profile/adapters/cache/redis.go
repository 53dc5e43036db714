// Package cache содержит Redis-кеш и кеширующий декоратор каталога профилей.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"devprofile/internal/profile/ports/services"
	"devprofile/pkg/logger"
)

const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"
	LogMethodIncr   = "incr"

	ErrorFailedToGet    = "failed to get value from redis"
	ErrorFailedToSet    = "failed to set value in redis"
	ErrorFailedToDelete = "failed to delete value from redis"
	ErrorFailedToIncr   = "failed to increment value in redis"
)

// RedisCache реализует services.Cache поверх go-redis.
type RedisCache struct {
	client     redis.Cmdable
	defaultTTL time.Duration
}

var _ services.Cache = (*RedisCache)(nil)

// NewRedisCache создает кеш над готовым клиентом. ttl = 0 в Set заменяется defaultTTL.
func NewRedisCache(client redis.Cmdable, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, defaultTTL: defaultTTL}
}

// Get возвращает пустую строку без ошибки, если ключа нет.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToGet, zap.String("method", LogMethodGet), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("method", LogMethodSet), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete, zap.String("method", LogMethodDelete), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// Incr атомарно увеличивает счетчик и возвращает новое значение.
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToIncr, zap.String("method", LogMethodIncr), zap.String("key", key), zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrorFailedToIncr, err)
	}
	return value, nil
}
