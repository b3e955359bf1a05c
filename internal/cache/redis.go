// Package cache provides the Redis-backed snapshot cache for provider
// payloads. The cache is best-effort: every failure degrades to a miss
// so a Redis outage never blocks ingestion.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/7777tbone7777/nfl-picks/internal/metrics"
)

// Cache wraps a Redis client with a fixed TTL for provider snapshots.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection. A failed ping is an
// error so misconfiguration is caught at startup rather than silently
// degrading every request.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	log.Info().Str("addr", addr).Dur("ttl", ttl).Msg("Connected to Redis cache")
	return &Cache{client: client, ttl: ttl}, nil
}

// Get returns the cached payload for key, or a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		metrics.RecordCacheMiss()
		return nil, false
	}
	metrics.RecordCacheHit()
	return body, true
}

// Set stores a payload under key with the configured TTL. Failures are
// logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate removes a cached payload, used when a job needs a fresh
// snapshot regardless of TTL.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
