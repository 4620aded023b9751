package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tokentasks/internal/domain"
)

// RedisCacheBackend provides a Redis-based CacheBackend.
type RedisCacheBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisCacheBackend creates a new Redis cache backend.
func NewRedisCacheBackend(addr, password string, db int, prefix string) *RedisCacheBackend {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCacheBackend{
		client: client,
		prefix: prefix,
	}
}

// Set stores a value in Redis with TTL.
func (r *RedisCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Get retrieves a value from Redis.
func (r *RedisCacheBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.NewNotFoundError("CACHE_MISS", "Cache miss")
	}
	if err != nil {
		return nil, domain.NewInternalError("CACHE_READ_FAILED", "Failed to read from Redis", err)
	}
	return data, nil
}

// Delete removes a key from Redis.
func (r *RedisCacheBackend) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Flush removes every key under the backend's prefix.
func (r *RedisCacheBackend) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return domain.NewInternalError("CACHE_SCAN_FAILED", "Failed to scan Redis keys", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Ping checks the Redis connection.
func (r *RedisCacheBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *RedisCacheBackend) Close() error {
	return r.client.Close()
}
