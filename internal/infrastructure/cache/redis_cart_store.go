package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noorfashion/backend/internal/domain/cart"
)

// RedisCartStore implements cart.Store using Redis. Carts are keyed by
// session ID and expire after the configured TTL; every write refreshes
// the TTL so active carts survive.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store on an existing Redis client
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:session:",
		ttl:       ttl,
	}
}

// Get loads the cart state for a session
func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (cart.State, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.State{}, cart.ErrCartNotFound
		}
		return cart.State{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var state cart.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return cart.State{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return state, nil
}

// Put stores the cart state for a session and refreshes its TTL
func (s *RedisCartStore) Put(ctx context.Context, sessionID string, state cart.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Delete removes the cart for a session. Deleting an absent cart is not
// an error.
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
