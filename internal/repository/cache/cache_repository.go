package cache

import (
	"context"
	"time"

	"github.com/lpg-station-service/internal/domain/repository"
	"github.com/lpg-station-service/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: r.client,
		logger: r.logger,
	}
}

func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	return data, nil
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

// DeleteByPrefix сканирует и удаляет ключи по префиксу. Используется для
// инвалидации кэша радиусного поиска после мутаций станций.
func (c *cacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("Cache delete failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}
