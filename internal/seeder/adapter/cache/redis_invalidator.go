package cache

import (
	"context"
	"fmt"
	"time"

	"sample-data-seeder/internal/seeder/domain/repository"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

const component = "cache_invalidator"

// flusher is the part of redis.Cmdable the invalidator needs.
type flusher interface {
	FlushDB(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisInvalidator clears the API's Redis cache database so that cached
// entities from the previous seed are not served after a reseed.
type RedisInvalidator struct {
	client flusher
	logger logger.Logger
}

var _ repository.CacheInvalidator = (*RedisInvalidator)(nil)

// NewRedisClient builds a client from a redis:// or rediss:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid cache redis url").WithCause(err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.MaxRetries = -1

	return redis.NewClient(opts), nil
}

// NewRedisInvalidator wraps a redis client.
func NewRedisInvalidator(client *redis.Client, log logger.Logger) *RedisInvalidator {
	return newRedisInvalidator(client, log)
}

func newRedisInvalidator(client flusher, log logger.Logger) *RedisInvalidator {
	return &RedisInvalidator{client: client, logger: log.WithComponent(component)}
}

// Invalidate flushes the selected Redis database.
func (r *RedisInvalidator) Invalidate(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return apperrors.NewDatabaseError("failed to flush cache").WithCause(err).WithComponent(component)
	}
	r.logger.Info("Cache flushed")
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisInvalidator) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
