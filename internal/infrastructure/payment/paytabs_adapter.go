package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/noorfashion/backend/internal/domain/payment"
)

// PayTabsAdapter implements the payment.Gateway port for PayTabs
type PayTabsAdapter struct {
	config     *PayTabsConfig
	httpClient *http.Client
}

// NewPayTabsAdapter creates a new PayTabs adapter
func NewPayTabsAdapter(config *PayTabsConfig) (*PayTabsAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PayTabsAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// CreatePayment creates a hosted payment session. The server key travels
// in the Authorization header as-is; request signing only applies to
// inbound callbacks.
func (a *PayTabsAdapter) CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	callback := req.CallbackURL
	if callback == "" {
		callback = a.config.CallbackURL
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = a.config.ReturnURL
	}

	amount, _ := req.Amount.Round(2).Float64()
	body := paytabsPaymentRequest{
		ProfileID:       a.config.ProfileID,
		TranType:        "sale",
		TranClass:       "ecom",
		CartID:          req.CartID,
		CartDescription: req.Description,
		CartCurrency:    req.Currency,
		CartAmount:      amount,
		Callback:        callback,
		Return:          returnURL,
		CustomerDetails: paytabsCustomerDetails{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Street1: req.Customer.Street,
			City:    req.Customer.City,
			State:   req.Customer.State,
			Country: req.Customer.Country,
			IP:      req.Customer.IP,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("paytabs: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("paytabs: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", a.config.ServerKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paytabs: failed to read response: %w", err)
	}

	// Non-2xx surfaces the gateway's own message verbatim
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gatewayErr paytabsErrorResponse
		if err := json.Unmarshal(respBody, &gatewayErr); err == nil && gatewayErr.Message != "" {
			return nil, fmt.Errorf("%w: %s", payment.ErrGatewayRequestFailed, gatewayErr.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", payment.ErrGatewayRequestFailed, resp.StatusCode)
	}

	var parsed paytabsPaymentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayInvalidResponse, err)
	}

	result := &payment.CreatePaymentResponse{
		TranRef:     parsed.TranRef,
		RedirectURL: parsed.RedirectURL,
		RawResponse: string(respBody),
	}

	if parsed.RedirectURL == "" {
		if parsed.PaymentResult == nil {
			return nil, fmt.Errorf("%w: neither redirect_url nor payment_result present", payment.ErrGatewayInvalidResponse)
		}
		status, err := mapPayTabsStatus(parsed.PaymentResult.ResponseStatus)
		if err != nil {
			return nil, err
		}
		result.Result = &payment.Result{
			Status:          status,
			ResponseCode:    parsed.PaymentResult.ResponseCode,
			ResponseMessage: parsed.PaymentResult.ResponseMessage,
			AcquirerRRN:     parsed.PaymentResult.AcquirerRRN,
			TransactionTime: parsed.PaymentResult.TransactionTime,
		}
	}

	return result, nil
}

// VerifyCallback authenticates a callback and parses it. Verification
// fails closed: a missing signature or any mismatch is an error and the
// payload must not be trusted.
func (a *PayTabsAdapter) VerifyCallback(ctx context.Context, fields map[string]string) (*payment.Callback, error) {
	signature, ok := fields[callbackFieldSignature]
	if !ok || signature == "" {
		return nil, payment.ErrCallbackMissingSignature
	}

	expected := a.computeSignature(fields)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, payment.ErrCallbackInvalidSignature
	}

	status, err := mapPayTabsStatus(fields[callbackFieldStatus])
	if err != nil {
		return nil, err
	}

	return &payment.Callback{
		TranRef:         fields[callbackFieldTranRef],
		CartID:          fields[callbackFieldCartID],
		Status:          status,
		ResponseCode:    fields[callbackFieldCode],
		ResponseMessage: fields[callbackFieldMessage],
		AcquirerRRN:     fields[callbackFieldRRN],
		AcquirerMessage: fields[callbackFieldAcqMsg],
		CustomerEmail:   fields[callbackFieldEmail],
		RawFields:       fields,
	}, nil
}

// computeSignature recomputes the callback signature: drop the signature
// field and every empty value, sort the remaining keys, URL-encode them
// into a query string and HMAC-SHA256 it with the server key. The
// encoding must match the gateway's canonicalization exactly, which is
// url.Values.Encode semantics (sorted keys, form escaping).
func (a *PayTabsAdapter) computeSignature(fields map[string]string) string {
	values := url.Values{}
	for key, value := range fields {
		if key == callbackFieldSignature || value == "" {
			continue
		}
		values.Set(key, value)
	}

	mac := hmac.New(sha256.New, []byte(a.config.ServerKey))
	mac.Write([]byte(values.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}

// mapPayTabsStatus maps a PayTabs response status code to the closed
// status set. Unknown codes are rejected rather than defaulted.
func mapPayTabsStatus(code string) (payment.Status, error) {
	switch code {
	case paytabsStatusAuthorized:
		return payment.StatusAuthorized, nil
	case paytabsStatusHeld:
		return payment.StatusHeld, nil
	case paytabsStatusPending:
		return payment.StatusPending, nil
	case paytabsStatusVoided:
		return payment.StatusVoided, nil
	case paytabsStatusDeclined:
		return payment.StatusDeclined, nil
	case paytabsStatusExpired:
		return payment.StatusExpired, nil
	default:
		return "", fmt.Errorf("%w: %q", payment.ErrCallbackUnknownStatus, code)
	}
}

// Ensure PayTabsAdapter implements the Gateway port
var _ payment.Gateway = (*PayTabsAdapter)(nil)
