package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/shared"
)

// Service manages per-session carts. Prices, names and images are
// snapshotted from the catalog at add time; stock is checked on add but
// only enforced hard at checkout.
type Service struct {
	store    cart.Store
	products catalog.Repository
	logger   *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, products catalog.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// Get returns the cart for a session. A session without a cart reads
// back as an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (CartResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	return ToCartResponse(state), nil
}

// AddItem adds one unit of a product variant to the session cart
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (CartResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return CartResponse{}, shared.ErrInvalidInput
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return CartResponse{}, err
	}
	if !product.InStockFor(req.Size, req.Color) {
		return CartResponse{}, shared.ErrOutOfStock
	}

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	state = state.AddItem(cart.Item{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Size:      req.Size,
		Color:     req.Color,
	})

	if err := s.store.Put(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return ToCartResponse(state), nil
}

// RemoveItem drops every line of the product, regardless of variant
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (CartResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	state = state.RemoveItem(productID)
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return ToCartResponse(state), nil
}

// UpdateQuantity sets the quantity on every line of the product.
// Zero or negative quantities remove the lines.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, req UpdateQuantityRequest) (CartResponse, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	state = state.UpdateQuantity(req.ProductID, req.Quantity)
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return ToCartResponse(state), nil
}

// Clear empties the session cart
func (s *Service) Clear(ctx context.Context, sessionID string) (CartResponse, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return CartResponse{}, err
	}
	return ToCartResponse(cart.NewState()), nil
}

// State returns the raw cart state for a session. Checkout uses this to
// snapshot the cart into an order.
func (s *Service) State(ctx context.Context, sessionID string) (cart.State, error) {
	return s.load(ctx, sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) (cart.State, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return cart.NewState(), nil
		}
		return cart.State{}, err
	}
	return state, nil
}
