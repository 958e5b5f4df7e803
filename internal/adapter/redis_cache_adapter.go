package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study-helper/internal/domain"

	"github.com/redis/go-redis/v9"
)

// redisCache adapts a go-redis client to the domain.Cache port.
type redisCache struct {
	client *redis.Client
}

// NewRedisCacheAdapter wraps a connected *redis.Client as a domain.Cache.
func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &redisCache{client: client}
}

// Get returns the value for key, or domain.ErrCacheMiss if it is absent.
func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (r *redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (r *redisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
