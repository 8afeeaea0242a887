package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noorfashion/backend/internal/domain/order"
)

// ListFilter narrows order listings
type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Items           string          `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	CartID          string          `json:"cart_id"`
	TranRef         string          `json:"tran_ref,omitempty"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentGateway  string          `json:"payment_gateway,omitempty"`
	DeliveryPartner string          `json:"delivery_partner,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	DeliveryStatus  string          `json:"delivery_status,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderListResult is a page of orders plus the unpaginated total
type OrderListResult struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ToOrderResponse converts a domain Order to the API shape
func ToOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           o.ItemsJSON,
		Total:           o.Total,
		Currency:        o.Currency,
		Status:          string(o.Status),
		Notes:           o.Notes,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		CartID:          o.CartID,
		TranRef:         o.TranRef,
		PaymentStatus:   string(o.PaymentStatus),
		PaymentGateway:  o.PaymentGateway,
		DeliveryPartner: o.DeliveryPartner,
		TrackingNumber:  o.TrackingNumber,
		DeliveryStatus:  o.DeliveryStatus,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders to responses
func ToOrderResponses(list []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(list))
	for i := range list {
		responses[i] = ToOrderResponse(&list[i])
	}
	return responses
}
