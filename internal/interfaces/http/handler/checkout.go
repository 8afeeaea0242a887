package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/noorfashion/backend/internal/application/checkout"
	"github.com/noorfashion/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler starts payment attempts for the session cart
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout snapshots the session cart into an order and opens a payment
// session with the gateway
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.checkout.Checkout(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetSessionID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
