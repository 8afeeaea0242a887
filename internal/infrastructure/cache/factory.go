package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/infrastructure/config"
)

// NewRedisClient creates and pings a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
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
	return client, nil
}

// CartStoreFactory creates cart stores based on configuration
type CartStoreFactory struct {
	redisConfig           config.RedisConfig
	sessionTTL            time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(cfg config.RedisConfig, sessionTTL time.Duration, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		redisConfig:           cfg,
		sessionTTL:            sessionTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates a cart store. Redis is preferred; when it is
// unreachable and fallback is allowed, a process-local store is used
// instead. In-memory carts are lost on restart and not shared across
// instances.
func (f *CartStoreFactory) CreateStore() (cart.Store, error) {
	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis cart store")
		return NewRedisCartStore(client, f.sessionTTL), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cart sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store",
		zap.Error(err),
	)
	return NewInMemoryCartStore(f.sessionTTL), nil
}
