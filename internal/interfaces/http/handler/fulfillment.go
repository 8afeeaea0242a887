package handler

import (
	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/noorfashion/backend/internal/application/fulfillment"
)

// FulfillmentHandler serves shipment booking and tracking. Booking and
// cancellation are admin operations; the courier's city list is public
// so the storefront can validate shipping addresses.
type FulfillmentHandler struct {
	BaseHandler
	fulfillment *fulfillmentapp.Service
}

// NewFulfillmentHandler creates a new FulfillmentHandler
func NewFulfillmentHandler(fulfillment *fulfillmentapp.Service) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillment: fulfillment}
}

// BookShipment books a courier shipment for a paid order
func (h *FulfillmentHandler) BookShipment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fulfillmentapp.BookShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.fulfillment.BookShipment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RefreshTracking pulls the courier's scan history and advances the
// order status accordingly
func (h *FulfillmentHandler) RefreshTracking(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.fulfillment.RefreshTracking(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelShipment cancels the courier booking and then the order
func (h *FulfillmentHandler) CancelShipment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.fulfillment.CancelShipment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListServices returns the courier's delivery service catalog
func (h *FulfillmentHandler) ListServices(c *gin.Context) {
	services, err := h.fulfillment.ListServices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, services)
}

// ListCities returns the cities the courier delivers to
func (h *FulfillmentHandler) ListCities(c *gin.Context) {
	cities, err := h.fulfillment.ListCities(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cities)
}
