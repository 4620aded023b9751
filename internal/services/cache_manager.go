package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"tokentasks/internal/domain"
)

// CacheManager caches query results (statistics, listings) in front of the
// repositories. A cache failure never fails the calling operation.
type CacheManager interface {
	// CacheQueryResult stores a serializable result under key with a TTL
	CacheQueryResult(ctx context.Context, key string, result interface{}, ttl time.Duration) error

	// GetCachedQueryResult loads a cached result into dest, reporting whether
	// the key was present and valid
	GetCachedQueryResult(ctx context.Context, key string, dest interface{}) (bool, error)

	// InvalidateQueryResult drops a cached result
	InvalidateQueryResult(ctx context.Context, key string) error

	// FlushCache drops everything
	FlushCache(ctx context.Context) error

	// GetCacheStats reports hit/miss counters and backend state
	GetCacheStats(ctx context.Context) (*CacheStats, error)
}

// CacheBackend defines the interface for cache storage backends.
type CacheBackend interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
}

// CacheStats provides cache performance metrics.
type CacheStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	Backend  string  `json:"backend"`
	Healthy  bool    `json:"healthy"`
}

// cacheManager implements CacheManager over a pluggable backend.
type cacheManager struct {
	backend CacheBackend
	name    string
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCacheManager creates a new cache manager.
func NewCacheManager(backend CacheBackend, name string, logger *slog.Logger) CacheManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &cacheManager{
		backend: backend,
		name:    name,
		logger:  logger,
	}
}

// CacheQueryResult stores a serializable result under key with a TTL.
func (cm *cacheManager) CacheQueryResult(ctx context.Context, key string, result interface{}, ttl time.Duration) error {
	if key == "" {
		return domain.NewValidationError("INVALID_CACHE_KEY", "Cache key cannot be empty", nil)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("CACHE_MARSHAL_ERROR", "Failed to marshal result for caching", err)
	}

	if err := cm.backend.Set(ctx, key, data, ttl); err != nil {
		// Caching is best-effort; log and move on.
		cm.logger.Warn("failed to cache query result", "key", key, "error", err)
	}
	return nil
}

// GetCachedQueryResult loads a cached result into dest.
func (cm *cacheManager) GetCachedQueryResult(ctx context.Context, key string, dest interface{}) (bool, error) {
	if key == "" {
		return false, domain.NewValidationError("INVALID_CACHE_KEY", "Cache key cannot be empty", nil)
	}

	data, err := cm.backend.Get(ctx, key)
	if err != nil || data == nil {
		cm.misses.Add(1)
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Stale or corrupt entry, drop it.
		_ = cm.backend.Delete(ctx, key)
		cm.misses.Add(1)
		return false, nil
	}

	cm.hits.Add(1)
	return true, nil
}

// InvalidateQueryResult drops a cached result.
func (cm *cacheManager) InvalidateQueryResult(ctx context.Context, key string) error {
	if key == "" {
		return domain.NewValidationError("INVALID_CACHE_KEY", "Cache key cannot be empty", nil)
	}
	return cm.backend.Delete(ctx, key)
}

// FlushCache drops everything.
func (cm *cacheManager) FlushCache(ctx context.Context) error {
	return cm.backend.Flush(ctx)
}

// GetCacheStats reports hit/miss counters and backend state.
func (cm *cacheManager) GetCacheStats(ctx context.Context) (*CacheStats, error) {
	hits := cm.hits.Load()
	misses := cm.misses.Load()

	stats := &CacheStats{
		Hits:    hits,
		Misses:  misses,
		Backend: cm.name,
		Healthy: cm.backend.Ping(ctx) == nil,
	}
	if total := hits + misses; total > 0 {
		stats.HitRatio = float64(hits) / float64(total)
	}
	return stats, nil
}
