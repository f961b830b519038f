package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles caching of derived reports in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// AnalyticsCacheTTL bounds how stale a cached summary can be if an
// invalidation is missed.
const AnalyticsCacheTTL = 30 * time.Second

const analyticsCacheKey = "cache:analytics:summary"

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client, ttl: AnalyticsCacheTTL}
}

// GetAnalytics decodes the cached summary into dst.
// It returns false on a cache miss.
func (s *CacheStore) GetAnalytics(ctx context.Context, dst any) (bool, error) {
	data, err := s.client.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetAnalytics stores a summary in cache.
func (s *CacheStore) SetAnalytics(ctx context.Context, summary any) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, analyticsCacheKey, data, s.ttl).Err()
}

// InvalidateAnalytics removes the cached summary.
func (s *CacheStore) InvalidateAnalytics(ctx context.Context) error {
	return s.client.Del(ctx, analyticsCacheKey).Err()
}
