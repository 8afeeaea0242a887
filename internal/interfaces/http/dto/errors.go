package dto

import "net/http"

// Domain error codes surfaced by the API. Handlers never invent codes;
// they forward what the domain and application layers raise.
const (
	// Generic
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"

	// Catalog
	ErrCodeInvalidCategory       = "INVALID_CATEGORY"
	ErrCodeInvalidPrice          = "INVALID_PRICE"
	ErrCodeVariantNotFound       = "VARIANT_NOT_FOUND"
	ErrCodeOutOfStock            = "OUT_OF_STOCK"
	ErrCodeDisallowedContentType = "DISALLOWED_CONTENT_TYPE"
	ErrCodeUploadURLFailed       = "UPLOAD_URL_FAILED"
	ErrCodeUploadNotFound        = "UPLOAD_NOT_FOUND"
	ErrCodeStorageCheckFailed    = "STORAGE_CHECK_FAILED"

	// Checkout and orders
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidCartID     = "INVALID_CART_ID"
	ErrCodeInvalidTotal      = "INVALID_TOTAL"
	ErrCodeTranRefConflict   = "TRANREF_CONFLICT"
	ErrCodePaymentRegression = "PAYMENT_REGRESSION"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotShippable      = "NOT_SHIPPABLE"
	ErrCodeShipmentBooked    = "SHIPMENT_BOOKED"

	// Fulfilment
	ErrCodeOrderNotPaid   = "ORDER_NOT_PAID"
	ErrCodeShipmentExists = "SHIPMENT_EXISTS"
	ErrCodeNoShipment     = "NO_SHIPMENT"

	// Identity
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserDisabled       = "USER_DISABLED"

	// Upstream dependencies
	ErrCodeGatewayError = "GATEWAY_ERROR"
	ErrCodeCourierError = "COURIER_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeValidationFailed:    http.StatusBadRequest,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeInvalidState:        http.StatusConflict,
	ErrCodeInternalError:       http.StatusInternalServerError,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,

	ErrCodeInvalidCategory:       http.StatusBadRequest,
	ErrCodeInvalidPrice:          http.StatusBadRequest,
	ErrCodeVariantNotFound:       http.StatusNotFound,
	ErrCodeOutOfStock:            http.StatusConflict,
	ErrCodeDisallowedContentType: http.StatusUnsupportedMediaType,
	ErrCodeUploadURLFailed:       http.StatusBadGateway,
	ErrCodeUploadNotFound:        http.StatusConflict,
	ErrCodeStorageCheckFailed:    http.StatusBadGateway,

	ErrCodeEmptyCart:         http.StatusBadRequest,
	ErrCodeInvalidCartID:     http.StatusBadRequest,
	ErrCodeInvalidTotal:      http.StatusBadRequest,
	ErrCodeTranRefConflict:   http.StatusConflict,
	ErrCodePaymentRegression: http.StatusConflict,
	ErrCodeInvalidTransition: http.StatusConflict,
	ErrCodeNotShippable:      http.StatusConflict,
	ErrCodeShipmentBooked:    http.StatusConflict,

	ErrCodeOrderNotPaid:   http.StatusConflict,
	ErrCodeShipmentExists: http.StatusConflict,
	ErrCodeNoShipment:     http.StatusConflict,

	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeUserDisabled:       http.StatusForbidden,

	ErrCodeGatewayError: http.StatusBadGateway,
	ErrCodeCourierError: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes the map does not know
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
