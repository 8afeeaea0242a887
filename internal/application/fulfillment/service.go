package fulfillment

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/delivery"
	"github.com/noorfashion/backend/internal/domain/order"
	"github.com/noorfashion/backend/internal/domain/shared"
)

var (
	// ErrOrderNotPaid rejects booking a shipment before payment settles
	ErrOrderNotPaid = shared.NewDomainError("ORDER_NOT_PAID",
		"Cannot book a shipment for an unpaid order")
	// ErrAlreadyBooked rejects double-booking a shipment
	ErrAlreadyBooked = shared.NewDomainError("SHIPMENT_EXISTS",
		"Order already has a booked shipment")
	// ErrNoShipment rejects tracking or cancelling without a booking
	ErrNoShipment = shared.NewDomainError("NO_SHIPMENT",
		"Order has no booked shipment")
)

// Service glues the courier to the order book. Bookings happen after
// payment, tracking refreshes drive the shipped and delivered
// transitions, and courier-side cancellation precedes order cancellation.
type Service struct {
	orders  order.Repository
	courier delivery.Courier
	logger  *zap.Logger
}

// NewService creates a new fulfilment Service
func NewService(orders order.Repository, courier delivery.Courier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:  orders,
		courier: courier,
		logger:  logger,
	}
}

// BookShipment books a courier shipment for a paid, processing order
func (s *Service) BookShipment(ctx context.Context, orderID uuid.UUID, req BookShipmentRequest) (*ShipmentResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsPaid() {
		return nil, ErrOrderNotPaid
	}
	if o.TrackingNumber != "" {
		return nil, ErrAlreadyBooked
	}

	pieces := req.Pieces
	if pieces <= 0 {
		pieces = countPieces(o.ItemsJSON)
	}
	collection := req.CollectionAmount
	if collection == "" {
		collection = o.Total.StringFixed(2)
	}

	resp, err := s.courier.CreateShipment(ctx, &delivery.CreateShipmentRequest{
		OrderID: o.CartID,
		Receiver: delivery.Receiver{
			Name:    o.CustomerName,
			Phone:   o.CustomerPhone,
			Email:   o.CustomerEmail,
			Address: o.ShippingAddress,
			City:    o.ShippingCity,
		},
		Pieces:           pieces,
		CollectionAmount: collection,
		Description:      req.Description,
		Instructions:     req.Instructions,
	})
	if err != nil {
		return nil, err
	}

	if err := o.AssignShipment("speedy", resp.TrackingNumber, resp.CourierOrderID); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("shipment booked",
		zap.String("order_id", o.ID.String()),
		zap.String("tracking_number", resp.TrackingNumber))

	return &ShipmentResponse{
		OrderID:         o.ID,
		DeliveryPartner: o.DeliveryPartner,
		TrackingNumber:  o.TrackingNumber,
		CourierOrderID:  o.CourierOrderID,
		OrderStatus:     string(o.Status),
	}, nil
}

// RefreshTracking pulls the courier's scan history for an order and
// advances the order through shipped and delivered as the scans warrant.
func (s *Service) RefreshTracking(ctx context.Context, orderID uuid.UUID) (*TrackingResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.TrackingNumber == "" {
		return nil, ErrNoShipment
	}

	events, err := s.courier.TrackShipment(ctx, o.TrackingNumber)
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		latest := events[len(events)-1].Status
		historyJSON, err := json.Marshal(events)
		if err != nil {
			return nil, err
		}
		o.RecordTracking(latest, string(historyJSON))
		s.advanceStatus(o, latest)
		if err := s.orders.Save(ctx, o); err != nil {
			return nil, err
		}
	}

	return &TrackingResponse{
		OrderID:        o.ID,
		TrackingNumber: o.TrackingNumber,
		DeliveryStatus: o.DeliveryStatus,
		OrderStatus:    string(o.Status),
		History:        toTrackingEvents(events),
	}, nil
}

// CancelShipment cancels the courier booking and then the order
func (s *Service) CancelShipment(ctx context.Context, orderID uuid.UUID) (*ShipmentResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.TrackingNumber == "" {
		return nil, ErrNoShipment
	}

	if _, err := s.courier.CancelShipment(ctx, o.TrackingNumber); err != nil {
		return nil, err
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("shipment cancelled",
		zap.String("order_id", o.ID.String()),
		zap.String("tracking_number", o.TrackingNumber))

	return &ShipmentResponse{
		OrderID:         o.ID,
		DeliveryPartner: o.DeliveryPartner,
		TrackingNumber:  o.TrackingNumber,
		CourierOrderID:  o.CourierOrderID,
		OrderStatus:     string(o.Status),
	}, nil
}

// ListServices returns the courier's delivery services
func (s *Service) ListServices(ctx context.Context) ([]ServiceResponse, error) {
	services, err := s.courier.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceResponse, len(services))
	for i, svc := range services {
		out[i] = ServiceResponse{
			ID:          svc.ID,
			ServiceType: svc.ServiceType,
			ServiceCode: svc.ServiceCode,
			ProductID:   svc.ProductID,
		}
	}
	return out, nil
}

// ListCities returns the courier's deliverable cities
func (s *Service) ListCities(ctx context.Context) ([]CityResponse, error) {
	cities, err := s.courier.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CityResponse, len(cities))
	for i, c := range cities {
		out[i] = CityResponse{ID: c.ID, Name: c.Name}
	}
	return out, nil
}

// advanceStatus maps courier scans onto the order state machine. Any
// scan means the parcel left the warehouse; a delivered scan closes the
// order. Transitions that do not apply are skipped silently because
// scans arrive out of order and redeliveries repeat history.
func (s *Service) advanceStatus(o *order.Order, latestStatus string) {
	if o.Status == order.StatusProcessing {
		if err := o.MarkShipped(); err != nil {
			return
		}
	}
	if strings.EqualFold(latestStatus, "Delivered") && o.Status == order.StatusShipped {
		_ = o.MarkDelivered()
	}
}

// countPieces sums the quantities in an order's items snapshot,
// defaulting to one parcel when the snapshot cannot be read.
func countPieces(itemsJSON string) int {
	var items []cart.Item
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return 1
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	if total <= 0 {
		return 1
	}
	return total
}
