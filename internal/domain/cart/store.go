package cart

import (
	"context"
	"errors"
)

// ErrCartNotFound indicates no cart exists for the session
var ErrCartNotFound = errors.New("cart: not found for session")

// Store persists per-session cart state. A session that has never touched
// its cart reads back as an empty state, not an error; ErrCartNotFound is
// reserved for implementations that need to distinguish absence internally.
type Store interface {
	// Get returns the cart for the session, or an empty state if none exists
	Get(ctx context.Context, sessionID string) (State, error)
	// Put stores the cart for the session
	Put(ctx context.Context, sessionID string, state State) error
	// Delete removes the cart for the session
	Delete(ctx context.Context, sessionID string) error
}
