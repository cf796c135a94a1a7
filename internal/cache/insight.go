package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	insightPrefix = "insight:user:"
	insightTTL    = time.Hour
)

// ErrCacheMiss is returned when a key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetInsight returns the cached insight text for a user, or ErrCacheMiss.
// Caching keeps the external text-generation call to at most one per
// dashboard view window.
func (c *Cache) GetInsight(ctx context.Context, userID string) (string, error) {
	val, err := c.client.Get(ctx, insightPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// SetInsight stores the insight text for a user.
func (c *Cache) SetInsight(ctx context.Context, userID, text string) error {
	return c.client.Set(ctx, insightPrefix+userID, text, insightTTL).Err()
}

// InvalidateInsight drops the cached insight, forcing a fresh generation
// on the next dashboard view. Called after a new report upload.
func (c *Cache) InvalidateInsight(ctx context.Context, userID string) error {
	return c.client.Del(ctx, insightPrefix+userID).Err()
}
