package fulfillment

import (
	"time"

	"github.com/google/uuid"

	"github.com/noorfashion/backend/internal/domain/delivery"
)

// BookShipmentRequest books a courier shipment for a paid order.
// CollectionAmount is what the courier collects on delivery; when empty
// it defaults to the order total.
type BookShipmentRequest struct {
	Pieces           int    `json:"pieces" binding:"omitempty,min=1"`
	CollectionAmount string `json:"collection_amount" binding:"omitempty,max=20"`
	Description      string `json:"description" binding:"max=500"`
	Instructions     string `json:"instructions" binding:"max=500"`
}

// ShipmentResponse reports the courier booking attached to an order
type ShipmentResponse struct {
	OrderID        uuid.UUID `json:"order_id"`
	DeliveryPartner string   `json:"delivery_partner"`
	TrackingNumber string    `json:"tracking_number"`
	CourierOrderID string    `json:"courier_order_id,omitempty"`
	OrderStatus    string    `json:"order_status"`
}

// TrackingEventResponse is one scan in a shipment's history
type TrackingEventResponse struct {
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
}

// TrackingResponse is a shipment's scan history, oldest first
type TrackingResponse struct {
	OrderID        uuid.UUID               `json:"order_id"`
	TrackingNumber string                  `json:"tracking_number"`
	DeliveryStatus string                  `json:"delivery_status"`
	OrderStatus    string                  `json:"order_status"`
	History        []TrackingEventResponse `json:"history"`
}

// ServiceResponse is one courier delivery service
type ServiceResponse struct {
	ID          string `json:"id"`
	ServiceType string `json:"service_type"`
	ServiceCode string `json:"service_code"`
	ProductID   string `json:"product_id"`
}

// CityResponse is one deliverable city
type CityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toTrackingEvents(events []delivery.TrackingEvent) []TrackingEventResponse {
	out := make([]TrackingEventResponse, len(events))
	for i, e := range events {
		out[i] = TrackingEventResponse{Status: e.Status, Created: e.Created}
	}
	return out
}
