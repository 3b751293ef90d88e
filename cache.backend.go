package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss reports an absent (or expired) key. Every other error
// coming out of a Cacher means the backend could not complete the call.
var ErrCacheMiss = errors.New("cache: key not found")

var _ Cacher = (*redisCache)(nil) // ensure redisCache implements Cacher.

// Cacher is the narrow contract the listing cache relies on. Get returns
// ErrCacheMiss when the key is absent. All calls are bounded in time by
// the implementation.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// redisCache implements the Cacher interface on a shared redis client.
// Each call carries its own deadline so an unresponsive backend cannot
// block a request longer than the configured operation timeout.
type redisCache struct {
	logger  *zap.Logger
	client  *redis.Client
	timeout time.Duration
}

// NewRedisCache provides an instance of redis-based cache backend.
func NewRedisCache(logger *zap.Logger, config *CacheConfig, client *redis.Client) Cacher {
	return &redisCache{
		logger:  logger,
		client:  client,
		timeout: config.OpTimeout,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Get retrieves the raw value stored under key.
func (rc *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := rc.bound(ctx)
	defer cancel()
	value, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key with the given expiration.
func (rc *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := rc.bound(ctx)
	defer cancel()
	if err := rc.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an
// absent key succeeds, which keeps invalidation idempotent.
func (rc *redisCache) Delete(ctx context.Context, key string) error {
	ctx, cancel := rc.bound(ctx)
	defer cancel()
	if err := rc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

func (rc *redisCache) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if rc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rc.timeout)
}
