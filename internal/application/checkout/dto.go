package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest starts a payment attempt for the session's cart
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	Notes         string `json:"notes" binding:"max=1000"`
}

// CheckoutResponse is the outcome of starting a payment attempt. When
// RedirectURL is set the customer must be sent to the gateway's hosted
// payment page; otherwise PaymentStatus carries the inline outcome.
type CheckoutResponse struct {
	OrderID       uuid.UUID       `json:"order_id"`
	CartID        string          `json:"cart_id"`
	TranRef       string          `json:"tran_ref"`
	RedirectURL   string          `json:"redirect_url,omitempty"`
	PaymentStatus string          `json:"payment_status"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
}

// CallbackResult reports how an inbound gateway notification was applied
type CallbackResult struct {
	OrderID       uuid.UUID `json:"order_id"`
	CartID        string    `json:"cart_id"`
	TranRef       string    `json:"tran_ref"`
	PaymentStatus string    `json:"payment_status"`
	OrderStatus   string    `json:"order_status"`
}

