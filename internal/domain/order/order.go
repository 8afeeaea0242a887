package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
)

// Status is the fulfilment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Common order errors
var (
	ErrTranRefConflict = shared.NewDomainError("TRANREF_CONFLICT",
		"Order already carries a different transaction reference")
	ErrPaymentRegression = shared.NewDomainError("PAYMENT_REGRESSION",
		"Payment status cannot leave the authorized state")
	ErrInvalidTransition = shared.NewDomainError("INVALID_TRANSITION",
		"Order status transition not allowed")
	ErrNotShippable = shared.NewDomainError("NOT_SHIPPABLE",
		"Only processing orders can be shipped")
)

// Order is the aggregate root for a customer order. The items snapshot,
// payment fields and delivery fields are opaque to everything except the
// checkout and fulfilment services that own them.
type Order struct {
	shared.BaseAggregateRoot

	UserID uuid.UUID
	// ItemsJSON is the cart snapshot taken at checkout
	ItemsJSON string
	Total     decimal.Decimal
	Currency  string
	Status    Status
	Notes     string

	// Customer contact
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Shipping destination
	ShippingAddress string
	ShippingCity    string

	// Payment fields. CartID correlates the checkout attempt; TranRef is
	// gateway-issued and write-once for the life of the order.
	CartID         string
	TranRef        string
	PaymentStatus  payment.Status
	PaymentGateway string
	PaymentDetails string

	// Delivery fields
	DeliveryPartner         string
	TrackingNumber          string
	DeliveryStatus          string
	DeliveryTrackingHistory string
	CourierOrderID          string
}

// New creates a pending order from a checkout attempt
func New(userID uuid.UUID, cartID, itemsJSON string, total decimal.Decimal, currency string) (*Order, error) {
	if cartID == "" {
		return nil, shared.NewDomainError("INVALID_CART_ID", "Cart ID is required")
	}
	if !total.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total must be positive")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ItemsJSON:         itemsJSON,
		Total:             total,
		Currency:          currency,
		Status:            StatusPending,
		CartID:            cartID,
		PaymentStatus:     payment.StatusPending,
	}, nil
}

// SetCustomer records the customer contact details
func (o *Order) SetCustomer(name, email, phone string) {
	o.CustomerName = name
	o.CustomerEmail = email
	o.CustomerPhone = phone
	o.Touch()
}

// SetShipping records the shipping destination
func (o *Order) SetShipping(address, city string) {
	o.ShippingAddress = address
	o.ShippingCity = city
	o.Touch()
}

// ApplyPaymentResult records a verified gateway outcome. The transaction
// reference is write-once: a different tranRef for the same order is a
// conflict, never an overwrite. An authorized payment moves the order to
// processing; terminal failures leave it pending for the customer to
// re-initiate checkout under a fresh cart ID.
func (o *Order) ApplyPaymentResult(tranRef string, status payment.Status, gateway, details string) error {
	if !status.IsValid() {
		return payment.ErrCallbackUnknownStatus
	}
	if o.TranRef != "" && o.TranRef != tranRef {
		return ErrTranRefConflict
	}
	if o.PaymentStatus == payment.StatusAuthorized && status != payment.StatusAuthorized {
		return ErrPaymentRegression
	}

	o.TranRef = tranRef
	o.PaymentStatus = status
	o.PaymentGateway = gateway
	o.PaymentDetails = details

	if status == payment.StatusAuthorized {
		o.Status = StatusProcessing
	}

	o.Touch()
	return nil
}

// AssignShipment records the courier booking for a processing order
func (o *Order) AssignShipment(partner, trackingNumber, courierOrderID string) error {
	if o.Status != StatusProcessing {
		return ErrNotShippable
	}
	o.DeliveryPartner = partner
	o.TrackingNumber = trackingNumber
	o.CourierOrderID = courierOrderID
	o.Touch()
	return nil
}

// RecordTracking updates the latest delivery status and history snapshot
func (o *Order) RecordTracking(latestStatus, historyJSON string) {
	o.DeliveryStatus = latestStatus
	o.DeliveryTrackingHistory = historyJSON
	o.Touch()
}

// MarkShipped moves a processing order to shipped
func (o *Order) MarkShipped() error {
	if o.Status != StatusProcessing {
		return ErrInvalidTransition
	}
	o.Status = StatusShipped
	o.Touch()
	return nil
}

// MarkDelivered moves a shipped order to delivered
func (o *Order) MarkDelivered() error {
	if o.Status != StatusShipped {
		return ErrInvalidTransition
	}
	o.Status = StatusDelivered
	o.Touch()
	return nil
}

// Cancel cancels an order that has not shipped yet
func (o *Order) Cancel() error {
	if o.Status != StatusPending && o.Status != StatusProcessing {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.Touch()
	return nil
}

// IsPaid reports whether the order's payment was authorized
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == payment.StatusAuthorized
}

// Repository is the persistence port for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCartID(ctx context.Context, cartID string) (*Order, error)
	FindByTranRef(ctx context.Context, tranRef string) (*Order, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, int64, error)
	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
