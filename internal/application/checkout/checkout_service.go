package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
)

// ErrEmptyCart rejects checkout on a cart with no items
var ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")

// Config holds the checkout-level payment settings
type Config struct {
	Currency    string
	CallbackURL string
	ReturnURL   string
}

// Service turns a session cart into a pending order and opens a payment
// session with the gateway. Each checkout attempt gets a fresh cart ID;
// a failed attempt is re-initiated under a new one, never retried.
type Service struct {
	carts     cart.Store
	orders    order.Repository
	products  catalog.Repository
	gateway   payment.Gateway
	config    Config
	logger    *zap.Logger
	newCartID func() string
}

// NewService creates a new checkout Service
func NewService(carts cart.Store, orders order.Repository, products catalog.Repository, gateway payment.Gateway, config Config, logger *zap.Logger) *Service {
	if config.Currency == "" {
		config.Currency = "AED"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:    carts,
		orders:   orders,
		products: products,
		gateway:  gateway,
		config:   config,
		logger:   logger,
		newCartID: func() string {
			return "NF-" + uuid.New().String()
		},
	}
}

// Checkout snapshots the session cart into an order and opens a payment
// session. The session cart is cleared once the order is recorded; the
// order's cart ID, not the session, correlates the payment from here on.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, sessionID string, req CheckoutRequest) (*CheckoutResponse, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := s.checkAvailability(ctx, state.Items); err != nil {
		return nil, err
	}

	itemsJSON, err := json.Marshal(state.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot cart: %w", err)
	}

	cartID := s.newCartID()
	o, err := order.New(userID, cartID, string(itemsJSON), state.Total, s.config.Currency)
	if err != nil {
		return nil, err
	}
	o.SetCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	o.SetShipping(req.Address, req.City)
	o.Notes = req.Notes

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	payResp, err := s.gateway.CreatePayment(ctx, &payment.CreatePaymentRequest{
		CartID:      cartID,
		Description: fmt.Sprintf("Noor Fashion order %s", cartID),
		Currency:    s.config.Currency,
		Amount:      state.Total,
		CallbackURL: s.config.CallbackURL,
		ReturnURL:   s.config.ReturnURL,
		Customer: payment.CustomerDetails{
			Name:   req.CustomerName,
			Email:  req.CustomerEmail,
			Phone:  req.CustomerPhone,
			Street: req.Address,
			City:   req.City,
		},
	})
	if err != nil {
		return nil, err
	}

	status := payment.StatusPending
	details := payResp.RawResponse
	if payResp.Result != nil {
		status = payResp.Result.Status
	}
	if err := o.ApplyPaymentResult(payResp.TranRef, status, "paytabs", details); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return &CheckoutResponse{
		OrderID:       o.ID,
		CartID:        cartID,
		TranRef:       payResp.TranRef,
		RedirectURL:   payResp.RedirectURL,
		PaymentStatus: string(o.PaymentStatus),
		Total:         o.Total,
		Currency:      o.Currency,
	}, nil
}

// checkAvailability re-validates every cart line against current stock.
// The cart may be hours old; a variant sold out or a product deleted
// since it was added must stop the checkout before any money moves.
func (s *Service) checkAvailability(ctx context.Context, items []cart.Item) error {
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return fmt.Errorf("%w: %s", shared.ErrOutOfStock, item.Name)
		}
		p, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("%w: %s", shared.ErrOutOfStock, item.Name)
			}
			return err
		}
		if !p.InStockFor(item.Size, item.Color) {
			return fmt.Errorf("%w: %s (%s/%s)", shared.ErrOutOfStock, item.Name, item.Size, item.Color)
		}
	}
	return nil
}
