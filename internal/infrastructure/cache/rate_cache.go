package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agro/backend/internal/application/currency"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const rateKey = "exchange:rate:usd-ars"

// MemoryRateCache is an in-process exchange-rate cache for single-instance
// deployments and tests.
type MemoryRateCache struct {
	mu        sync.RWMutex
	rate      decimal.Decimal
	expiresAt time.Time
}

// NewMemoryRateCache creates an empty in-process rate cache
func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{}
}

// Get returns the cached rate if it has not expired
func (c *MemoryRateCache) Get(_ context.Context) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.expiresAt.IsZero() || time.Now().After(c.expiresAt) {
		return decimal.Zero, false, nil
	}
	return c.rate, true, nil
}

// Set stores the rate for the given TTL
func (c *MemoryRateCache) Set(_ context.Context, rate decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = rate
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// RedisRateCache shares the exchange rate across instances through Redis.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache connects to Redis and verifies the connection.
func NewRedisRateCache(cfg config.RedisConfig) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateCache{client: client}, nil
}

// NewRedisRateCacheWithClient wraps an existing Redis client. Useful for
// tests and for sharing one client across components.
func NewRedisRateCacheWithClient(client *redis.Client) *RedisRateCache {
	return &RedisRateCache{client: client}
}

// Get returns the cached rate; a missing key is not an error
func (c *RedisRateCache) Get(ctx context.Context) (decimal.Decimal, bool, error) {
	value, err := c.client.Get(ctx, rateKey).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached rate: %w", err)
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt cached rate %q: %w", value, err)
	}
	return rate, true, nil
}

// Set stores the rate with the given TTL
func (c *RedisRateCache) Set(ctx context.Context, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, rateKey, rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rate: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *RedisRateCache) Close() error {
	return c.client.Close()
}

var _ currency.RateCache = (*MemoryRateCache)(nil)
var _ currency.RateCache = (*RedisRateCache)(nil)
