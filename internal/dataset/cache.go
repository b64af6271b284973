package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/common/metrics"
	"deal-pulse/internal/models"
)

const cacheKeyPrefix = "pulse:dataset:"

// CachedSource is a Redis read-through cache in front of another source.
// Redis failures are logged and bypassed; only the inner source can fail a load.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(inner Source, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "dataset", "source": inner.Name(), "cache": "redis"}),
	}
}

func (c *CachedSource) Name() string { return c.inner.Name() }

// CacheKey is the Redis key holding the cached dataset for a source name.
func CacheKey(sourceName string) string {
	return cacheKeyPrefix + sourceName
}

func (c *CachedSource) Load(ctx context.Context) ([]models.Startup, error) {
	key := CacheKey(c.inner.Name())

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var startups []models.Startup
		if jsonErr := json.Unmarshal([]byte(val), &startups); jsonErr == nil {
			metrics.DatasetCache.WithLabelValues("hit").Inc()
			return startups, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
		metrics.DatasetCache.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		metrics.DatasetCache.WithLabelValues("miss").Inc()
	default:
		c.logger.WithError(apperrors.NewDatasetCacheFailedError(err)).Warn("cache read failed", map[string]interface{}{"key": key})
		metrics.DatasetCache.WithLabelValues("error").Inc()
	}

	startups, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(startups)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(apperrors.NewDatasetCacheFailedError(err)).Warn("cache write failed", map[string]interface{}{"key": key})
	}
	return startups, nil
}

// Invalidate drops the cached copy so the next Load hits the inner source.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, CacheKey(c.inner.Name())).Err(); err != nil {
		return apperrors.NewDatasetCacheFailedError(err)
	}
	return nil
}
