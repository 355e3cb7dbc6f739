package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/voxlai"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces all keys written by RedisCache.
const DefaultKeyPrefix = "voxlai:"

// RedisCache is a Redis-backed translation cache.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
	onError   func(op, key string, err error)
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379/0")
	TTL       int           // TTL in seconds (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "voxlai:")
	Timeout   time.Duration // Per-operation timeout (default: 2s)
}

// NewRedisCache creates a new Redis cache and checks the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &voxlai.CacheError{Message: "invalid redis URL", Cause: err}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, &voxlai.CacheError{Message: "connecting to redis", Cause: err}
	}

	c := NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   2 * time.Second,
	}
}

// OnError registers a hook called when a Redis operation fails.
// Get failures are otherwise reported only as cache misses.
func (c *RedisCache) OnError(fn func(op, key string, err error)) {
	c.onError = fn
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.report("get", key, err)
		return "", false
	}
	return val, true
}

// Set stores a value in Redis.
func (c *RedisCache) Set(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		c.report("set", key, err)
		return &voxlai.CacheError{Message: "set " + key, Cause: err}
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) report(op, key string, err error) {
	if c.onError != nil {
		c.onError(op, key, err)
	}
}

// Verify RedisCache implements TranslationCache
var _ TranslationCache = (*RedisCache)(nil)
