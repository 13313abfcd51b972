package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/housekeeping-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

const snapshotCacheKey = "housekeeping:snapshot"

// SnapshotCache caches the serialized state snapshot in Redis. All methods
// degrade to cache misses on transport errors so a flaky cache never fails a
// request.
type SnapshotCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache builds a cache on top of an established client.
func NewSnapshotCache(r *Redis, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{redis: r, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot payload, or ok=false on miss or error.
func (c *SnapshotCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	payload, err := c.redis.Client.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("snapshot cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the snapshot payload.
func (c *SnapshotCache) Set(ctx context.Context, payload []byte) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Set(ctx, snapshotCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached snapshot after a mutation.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, snapshotCacheKey).Err(); err != nil {
		c.logger.Warn("snapshot cache invalidation failed", zap.Error(err))
	}
}
