package cache

import (
	"context"
	"sync"
	"time"

	"github.com/noorfashion/backend/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store with a process-local map.
// Suitable for single-instance deployments and tests; carts do not
// survive a restart and are not shared across instances.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	carts   map[string]cartEntry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped sync.Once
}

type cartEntry struct {
	state     cart.State
	expiresAt time.Time
}

// NewInMemoryCartStore creates an in-memory cart store with background
// expiry sweeping
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	s := &InMemoryCartStore{
		carts:  make(map[string]cartEntry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Get loads the cart state for a session
func (s *InMemoryCartStore) Get(ctx context.Context, sessionID string) (cart.State, error) {
	s.mu.RLock()
	entry, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return cart.State{}, cart.ErrCartNotFound
	}
	return entry.state, nil
}

// Put stores the cart state for a session and refreshes its TTL
func (s *InMemoryCartStore) Put(ctx context.Context, sessionID string, state cart.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = cartEntry{
		state:     state,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the cart for a session
func (s *InMemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// Close stops the background sweeper
func (s *InMemoryCartStore) Close() error {
	s.stopped.Do(func() { close(s.stopCh) })
	return nil
}

// sweep periodically drops expired carts
func (s *InMemoryCartStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.carts {
				if now.After(entry.expiresAt) {
					delete(s.carts, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
