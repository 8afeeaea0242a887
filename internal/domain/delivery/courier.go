package delivery

import (
	"context"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Courier Errors
// ---------------------------------------------------------------------------

var (
	ErrCourierNotConfigured   = errors.New("delivery: courier not configured")
	ErrCourierUnavailable     = errors.New("delivery: courier temporarily unavailable")
	ErrCourierRequestFailed   = errors.New("delivery: courier request failed")
	ErrCourierInvalidResponse = errors.New("delivery: invalid courier response")
	ErrShipmentMissingFields  = errors.New("delivery: missing required shipment fields")
	ErrMissingTrackingNumber  = errors.New("delivery: missing tracking number")
)

// Receiver is the shipment's destination contact
type Receiver struct {
	Name    string
	Phone   string
	Email   string
	Address string
	City    string
}

// CreateShipmentRequest describes a new courier shipment
type CreateShipmentRequest struct {
	// OrderID is the storefront order the shipment fulfils
	OrderID  string
	Receiver Receiver
	Pieces   int
	// CollectionAmount is the cash-on-delivery amount, "0.00" for prepaid
	CollectionAmount string
	Description      string
	Instructions     string
}

// Validate checks the request before any network call is made
func (r *CreateShipmentRequest) Validate() error {
	if r.OrderID == "" || r.Receiver.Name == "" || r.Receiver.Phone == "" ||
		r.Receiver.Address == "" || r.Receiver.City == "" {
		return ErrShipmentMissingFields
	}
	return nil
}

// CreateShipmentResponse is the courier's acknowledgment of a new shipment
type CreateShipmentResponse struct {
	TrackingNumber string
	CourierOrderID string
	Message        string
}

// TrackingEvent is one scan in a shipment's history
type TrackingEvent struct {
	TrackingNumber string    `json:"tracking_no"`
	Status         string    `json:"status"`
	Created        time.Time `json:"created"`
}

// CancelShipmentResponse is the courier's acknowledgment of a cancellation
type CancelShipmentResponse struct {
	TrackingNumber string
	Message        string
}

// Service describes a courier delivery product (e.g. same-day, 4hr)
type Service struct {
	ID          string
	ServiceType string
	ServiceCode string
	ProductID   string
}

// City is a deliverable destination city
type City struct {
	ID   string
	Name string
}

// Courier is the port implemented by courier API adapters
type Courier interface {
	// CreateShipment books a shipment and returns its tracking number.
	// The adapter generates a locally unique tracking number when the
	// courier does not supply one up front.
	CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*CreateShipmentResponse, error)
	// TrackShipment returns the scan history for a tracking number,
	// oldest first. An empty history is a valid result for a shipment
	// the courier has not scanned yet.
	TrackShipment(ctx context.Context, trackingNumber string) ([]TrackingEvent, error)
	// CancelShipment requests cancellation. The courier may reject it
	// when the shipment has moved past a cancellable state.
	CancelShipment(ctx context.Context, trackingNumber string) (*CancelShipmentResponse, error)
	// ListServices returns the courier's available delivery services
	ListServices(ctx context.Context) ([]Service, error)
	// ListCities returns the courier's deliverable cities
	ListCities(ctx context.Context) ([]City, error)
}
