package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkoutapp "github.com/noorfashion/backend/internal/application/checkout"
	"github.com/noorfashion/backend/internal/domain/payment"
	applog "github.com/noorfashion/backend/internal/infrastructure/logger"
)

// PaymentCallbackHandler receives payment gateway notifications. These
// endpoints are called by the gateway, not by browsers or the frontend,
// and authenticate via the callback signature instead of a bearer token.
type PaymentCallbackHandler struct {
	BaseHandler
	callbacks *checkoutapp.CallbackService
	siteURL   string
}

// NewPaymentCallbackHandler creates a new PaymentCallbackHandler.
// siteURL is the frontend base for browser-return redirects; when empty
// the return endpoint answers JSON.
func NewPaymentCallbackHandler(callbacks *checkoutapp.CallbackService, siteURL string) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		callbacks: callbacks,
		siteURL:   strings.TrimSuffix(siteURL, "/"),
	}
}

// HandleCallback processes the server-to-server payment notification.
// The gateway posts JSON; the signature travels inside the payload.
func (h *PaymentCallbackHandler) HandleCallback(c *gin.Context) {
	fields, err := h.extractFields(c)
	if err != nil {
		h.BadRequest(c, err)
		return
	}

	applog.L(c.Request.Context()).Info("gateway callback received",
		zap.String("tran_ref", fields["tranRef"]),
		zap.String("cart_id", fields["cartId"]),
	)

	result, err := h.callbacks.HandleCallback(c.Request.Context(), fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// HandleReturn processes the browser's landing after the hosted payment
// page. The gateway signs the return payload the same way it signs
// callbacks, so the same verification applies. GET returns carry the
// fields in the query string; POST returns carry them in the body. With
// a configured site URL the browser is redirected to the storefront's
// success or cancel page; verification failures always land on cancel.
func (h *PaymentCallbackHandler) HandleReturn(c *gin.Context) {
	var fields map[string]string
	var err error
	if c.Request.Method == http.MethodGet {
		fields = queryFields(c)
	} else {
		fields, err = h.extractFields(c)
		if err != nil {
			h.BadRequest(c, err)
			return
		}
	}

	result, err := h.callbacks.HandleCallback(c.Request.Context(), fields)

	if h.siteURL == "" {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, result)
		return
	}

	if err != nil || result.PaymentStatus != string(payment.StatusAuthorized) {
		c.Redirect(http.StatusFound, h.siteURL+"/payment/cancel?tranRef="+url.QueryEscape(fields["tranRef"]))
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/payment/success?tranRef=%s&cartId=%s",
		h.siteURL, url.QueryEscape(result.TranRef), url.QueryEscape(result.CartID)))
}

// queryFields flattens the query string into the signature field map
func queryFields(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	fields := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			fields[key] = v[0]
		}
	}
	return fields
}

// extractFields flattens the notification payload into a string map for
// signature verification. JSON bodies keep scalars only; form bodies map
// directly.
func (h *PaymentCallbackHandler) extractFields(c *gin.Context) (map[string]string, error) {
	contentType := c.ContentType()

	if strings.Contains(contentType, "application/x-www-form-urlencoded") ||
		strings.Contains(contentType, "multipart/form-data") {
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("malformed form payload: %w", err)
		}
		fields := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return fields, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read callback body: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed callback payload: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case float64:
			fields[key] = formatJSONNumber(v)
		case bool:
			fields[key] = fmt.Sprintf("%t", v)
		case nil:
			// omit
		default:
			// nested objects are not part of the signature base
		}
	}
	return fields, nil
}

// formatJSONNumber renders a JSON number the way the gateway sent it:
// integers without a fraction, decimals in plain notation. Exponent
// forms would diverge from the signed text for large amounts.
func formatJSONNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
