package checkout

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/catalog"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/payment"
)

// CallbackService applies verified gateway notifications to orders.
// Verification fails closed; an unverifiable callback never touches an
// order. Redelivered callbacks are idempotent.
type CallbackService struct {
	gateway  payment.Gateway
	orders   order.Repository
	products catalog.Repository
	logger   *zap.Logger
}

// NewCallbackService creates a new CallbackService
func NewCallbackService(gateway payment.Gateway, orders order.Repository, products catalog.Repository, logger *zap.Logger) *CallbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CallbackService{
		gateway:  gateway,
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// HandleCallback verifies an inbound gateway notification and applies it
// to the matching order. The first authorized callback decrements stock
// for every item in the order snapshot; redeliveries do not.
func (s *CallbackService) HandleCallback(ctx context.Context, fields map[string]string) (*CallbackResult, error) {
	cb, err := s.gateway.VerifyCallback(ctx, fields)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByCartID(ctx, cb.CartID)
	if err != nil {
		return nil, err
	}

	// Redelivery of an already applied callback
	if o.TranRef == cb.TranRef && o.PaymentStatus == cb.Status {
		return s.result(o), nil
	}

	firstAuthorization := cb.Status == payment.StatusAuthorized && !o.IsPaid()

	details, err := json.Marshal(cb.RawFields)
	if err != nil {
		details = nil
	}
	if err := o.ApplyPaymentResult(cb.TranRef, cb.Status, "paytabs", string(details)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if firstAuthorization {
		s.decrementStock(ctx, o)
	}

	s.logger.Info("payment callback applied",
		zap.String("cart_id", cb.CartID),
		zap.String("tran_ref", cb.TranRef),
		zap.String("payment_status", string(cb.Status)))

	return s.result(o), nil
}

func (s *CallbackService) result(o *order.Order) *CallbackResult {
	return &CallbackResult{
		OrderID:       o.ID,
		CartID:        o.CartID,
		TranRef:       o.TranRef,
		PaymentStatus: string(o.PaymentStatus),
		OrderStatus:   string(o.Status),
	}
}

// decrementStock reduces catalog stock for every line of a paid order.
// Failures are logged, not returned: the payment is already settled and
// stock drift is corrected by the admin, not by rejecting the callback.
func (s *CallbackService) decrementStock(ctx context.Context, o *order.Order) {
	var items []cart.Item
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		s.logger.Warn("failed to parse order items for stock decrement",
			zap.String("order_id", o.ID.String()), zap.Error(err))
		return
	}

	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			continue
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			s.logger.Warn("ordered product missing from catalog",
				zap.String("product_id", item.ProductID), zap.Error(err))
			continue
		}
		if err := product.AdjustStock(item.Size, item.Color, -item.Quantity); err != nil {
			s.logger.Warn("failed to adjust stock for ordered variant",
				zap.String("product_id", item.ProductID),
				zap.String("size", item.Size),
				zap.String("color", item.Color),
				zap.Error(err))
			continue
		}
		if err := s.products.Save(ctx, product); err != nil {
			s.logger.Warn("failed to persist stock decrement",
				zap.String("product_id", item.ProductID), zap.Error(err))
		}
	}
}
