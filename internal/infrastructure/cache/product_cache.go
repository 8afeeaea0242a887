package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key is absent from the cache
var ErrCacheMiss = errors.New("cache: miss")

// ProductCache caches serialized catalog responses in Redis. The cache
// is read-through at the application layer: a miss falls back to the
// database and the result is written back with a short TTL, and any
// catalog write invalidates the whole product namespace.
type ProductCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewProductCache creates a product cache on an existing Redis client
func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCache{
		client:    client,
		keyPrefix: "catalog:products:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Get loads a cached value into out. Returns ErrCacheMiss when absent.
func (c *ProductCache) Get(ctx context.Context, key string, out any) error {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode cached value: %w", err)
	}
	return nil
}

// Set stores a value under key with the cache TTL
func (c *ProductCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached catalog entry. Called after any product
// create, update, delete or stock adjustment.
func (c *ProductCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("catalog cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// ListKey builds a deterministic cache key for a product listing query
func ListKey(category string, onSale bool, page, pageSize int) string {
	return fmt.Sprintf("list:%s:sale=%t:page=%d:size=%d", category, onSale, page, pageSize)
}

// ProductKey builds a cache key for a single product
func ProductKey(id string) string {
	return "item:" + id
}
