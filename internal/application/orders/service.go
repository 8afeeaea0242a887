package orders

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/shared"
)

// ErrShipmentBooked rejects a plain cancellation once a courier holds the
// parcel; the shipment has to be cancelled through fulfilment first.
var ErrShipmentBooked = shared.NewDomainError("SHIPMENT_BOOKED",
	"Order has a booked shipment; cancel the shipment first")

// Service exposes order history and administration. Customers see only
// their own orders; admins see everything.
type Service struct {
	orders order.Repository
	logger *zap.Logger
}

// NewService creates a new order Service
func NewService(repo order.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: repo, logger: logger}
}

// GetByID returns one order. Non-admin requesters only see their own.
func (s *Service) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListForUser returns the requester's order history, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, filter ListFilter) (*OrderListResult, error) {
	domainFilter := s.domainFilter(filter)
	list, total, err := s.orders.FindByUserID(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{
		Orders:   ToOrderResponses(list),
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.PageSize,
	}, nil
}

// ListAll returns every order, for the admin dashboard
func (s *Service) ListAll(ctx context.Context, filter ListFilter) (*OrderListResult, error) {
	domainFilter := s.domainFilter(filter)
	list, total, err := s.orders.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{
		Orders:   ToOrderResponses(list),
		Total:    total,
		Page:     domainFilter.Page,
		PageSize: domainFilter.PageSize,
	}, nil
}

// Cancel cancels an unshipped order. Orders with a booked shipment go
// through fulfilment, which cancels the courier side first.
func (s *Service) Cancel(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}
	if o.TrackingNumber != "" {
		return nil, ErrShipmentBooked
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", o.ID.String()),
		zap.Bool("by_admin", isAdmin))

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdateStatus is the admin override for the fulfilment state machine
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status(status) {
	case order.StatusShipped:
		err = o.MarkShipped()
	case order.StatusDelivered:
		err = o.MarkDelivered()
	case order.StatusCancelled:
		err = o.Cancel()
	default:
		err = shared.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func (s *Service) domainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
