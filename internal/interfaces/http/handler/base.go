package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/domain/cart"
	"github.com/noorfashion/backend/internal/domain/delivery"
	"github.com/noorfashion/backend/internal/domain/payment"
	"github.com/noorfashion/backend/internal/domain/shared"
	applog "github.com/noorfashion/backend/internal/infrastructure/logger"
	"github.com/noorfashion/backend/internal/interfaces/http/dto"
	"github.com/noorfashion/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response helpers every handler embeds
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta *dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for binding and validation failures
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeValidationFailed, err.Error(), middleware.GetRequestID(c)))
}

// HandleError maps application and domain errors onto HTTP responses.
// Domain errors carry their own code. Upstream gateway and courier
// failures surface as 502s carrying the upstream message, which the
// adapters preserve verbatim.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithRequestID(
			domainErr.Code, domainErr.Message, requestID))
		return
	}

	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Cart not found", requestID))
	case errors.Is(err, payment.ErrCallbackMissingSignature):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeValidationFailed, "Callback signature is missing", requestID))
	case errors.Is(err, payment.ErrCallbackInvalidSignature):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized, "Callback signature verification failed", requestID))
	case errors.Is(err, payment.ErrGatewayUnavailable),
		errors.Is(err, payment.ErrGatewayRequestFailed),
		errors.Is(err, payment.ErrGatewayInvalidResponse),
		errors.Is(err, payment.ErrGatewayNotConfigured):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeGatewayError, err.Error(), requestID))
	case errors.Is(err, delivery.ErrCourierUnavailable),
		errors.Is(err, delivery.ErrCourierRequestFailed),
		errors.Is(err, delivery.ErrCourierInvalidResponse),
		errors.Is(err, delivery.ErrCourierNotConfigured):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeCourierError, err.Error(), requestID))
	default:
		applog.GetGinLogger(c).Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternalError, "An internal error occurred", requestID))
	}
}

// parseUUIDParam parses a UUID path parameter, responding 400 on failure.
// The bool reports whether the handler should continue.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidInput, "Invalid "+name+" parameter", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}
