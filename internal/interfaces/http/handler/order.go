package handler

import (
	"github.com/gin-gonic/gin"

	ordersapp "github.com/noorfashion/backend/internal/application/orders"
	"github.com/noorfashion/backend/internal/domain/identity"
	"github.com/noorfashion/backend/internal/interfaces/http/dto"
	"github.com/noorfashion/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves order history for customers and order
// administration for the back office
type OrderHandler struct {
	BaseHandler
	orders *ordersapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *ordersapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns the caller's order history
func (h *OrderHandler) List(c *gin.Context) {
	var filter ordersapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orders.ListForUser(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Orders,
		dto.NewPaginatedMeta(result.Page, result.PageSize, result.Total))
}

// Get returns one order. Customers only see their own.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orders.GetByID(c.Request.Context(),
		middleware.GetUserID(c), h.isAdmin(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an unshipped order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.orders.Cancel(c.Request.Context(),
		middleware.GetUserID(c), h.isAdmin(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAll returns every order, for the admin dashboard
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter ordersapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	result, err := h.orders.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Orders,
		dto.NewPaginatedMeta(result.Page, result.PageSize, result.Total))
}

// updateStatusRequest is the admin status override payload
type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=shipped delivered cancelled"`
}

// UpdateStatus is the admin override for the fulfilment state machine
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OrderHandler) isAdmin(c *gin.Context) bool {
	return identity.Role(middleware.GetRole(c)).IsAdmin()
}
