package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// HostCacheTTL bounds how stale a cached host profile may get; vote paths
// invalidate eagerly so the TTL is only a backstop.
const HostCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for host profile lookups.
type CacheService struct {
	rdb    *redis.Client
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCacheService creates a CacheService. If redisURL is empty or the
// connection fails, the cache degrades to a no-op.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// InstrumentWith wires hit/miss counters; safe to skip in tests.
func (c *CacheService) InstrumentWith(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

// GetHost retrieves a cached host profile. Returns nil if not cached or the
// cache is disabled.
func (c *CacheService) GetHost(ctx context.Context, hostID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, hostKey(hostID)).Bytes()
	if err == redis.Nil {
		if c.misses != nil {
			c.misses.Inc()
		}
		return nil, nil
	}
	if err == nil && c.hits != nil {
		c.hits.Inc()
	}
	return data, err
}

// SetHost stores a host profile response in cache.
func (c *CacheService) SetHost(ctx context.Context, hostID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, hostKey(hostID), b, HostCacheTTL).Err()
}

// InvalidateHost removes a host from cache (called after vote changes).
func (c *CacheService) InvalidateHost(ctx context.Context, hostID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, hostKey(hostID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func hostKey(hostID string) string {
	return fmt.Sprintf("host:%s", hostID)
}
