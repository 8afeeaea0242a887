package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Payment Gateway Errors
// ---------------------------------------------------------------------------

var (
	// Payment creation errors
	ErrPaymentInvalidAmount      = errors.New("payment: amount must be positive")
	ErrPaymentInvalidCurrency    = errors.New("payment: invalid currency code")
	ErrPaymentInvalidCartID      = errors.New("payment: missing cart ID")
	ErrPaymentInvalidDescription = errors.New("payment: missing description")
	ErrPaymentInvalidCustomer    = errors.New("payment: incomplete customer details")

	// Gateway errors
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")
	ErrGatewayUnavailable     = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")

	// Callback errors
	ErrCallbackMissingSignature = errors.New("payment: callback missing signature")
	ErrCallbackInvalidSignature = errors.New("payment: invalid callback signature")
	ErrCallbackUnknownStatus    = errors.New("payment: unknown response status code")
)

// Status is the closed set of payment outcomes a gateway can report.
type Status string

const (
	StatusAuthorized Status = "authorized"
	StatusHeld       Status = "held"
	StatusPending    Status = "pending"
	StatusVoided     Status = "voided"
	StatusDeclined   Status = "declined"
	StatusExpired    Status = "expired"
)

// IsValid returns true if the status is one of the closed set
func (s Status) IsValid() bool {
	switch s {
	case StatusAuthorized, StatusHeld, StatusPending, StatusVoided, StatusDeclined, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminalFailure reports whether the status ends the payment attempt.
// A failed attempt requires the customer to re-initiate checkout with a
// fresh cart ID; transaction references are never reused.
func (s Status) IsTerminalFailure() bool {
	switch s {
	case StatusVoided, StatusDeclined, StatusExpired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CustomerDetails identifies the paying customer to the gateway
type CustomerDetails struct {
	Name    string
	Email   string
	Phone   string
	Street  string
	City    string
	State   string
	Country string
	IP      string
}

// CreatePaymentRequest describes an outbound payment session
type CreatePaymentRequest struct {
	// CartID is the merchant-issued identifier correlating this checkout
	// attempt with its eventual order. It must be unique per attempt.
	CartID      string
	Description string
	Currency    string
	Amount      decimal.Decimal
	// CallbackURL receives the gateway's server-to-server notification
	CallbackURL string
	// ReturnURL is where the customer's browser lands after the hosted page
	ReturnURL string
	Customer  CustomerDetails
}

// Validate checks the request before any network call is made
func (r *CreatePaymentRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrPaymentInvalidAmount
	}
	if len(r.Currency) != 3 {
		return ErrPaymentInvalidCurrency
	}
	if r.CartID == "" {
		return ErrPaymentInvalidCartID
	}
	if r.Description == "" {
		return ErrPaymentInvalidDescription
	}
	if r.Customer.Name == "" || r.Customer.Email == "" {
		return ErrPaymentInvalidCustomer
	}
	return nil
}

// CreatePaymentResponse is the outcome of creating a payment session.
// Exactly one of RedirectURL or Result is populated: hosted-page flows
// return a redirect, rare direct captures return an inline result.
type CreatePaymentResponse struct {
	// TranRef is the gateway-issued identifier for this payment attempt
	TranRef     string
	RedirectURL string
	Result      *Result
	RawResponse string
}

// RequiresRedirect reports whether the customer must be sent to the
// gateway's hosted payment page.
func (r *CreatePaymentResponse) RequiresRedirect() bool {
	return r.RedirectURL != ""
}

// Result is an inline payment result for direct-capture responses
type Result struct {
	Status          Status
	ResponseCode    string
	ResponseMessage string
	AcquirerRRN     string
	TransactionTime string
}

// Callback is a verified, parsed gateway notification
type Callback struct {
	TranRef         string
	CartID          string
	Status          Status
	ResponseCode    string
	ResponseMessage string
	AcquirerRRN     string
	AcquirerMessage string
	CustomerEmail   string
	RawFields       map[string]string
}

// Gateway is the port implemented by payment gateway adapters
type Gateway interface {
	// CreatePayment creates an outbound payment session
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)
	// VerifyCallback authenticates an inbound callback and parses it.
	// Implementations fail closed: missing or mismatched signatures are
	// errors, never a partially trusted callback.
	VerifyCallback(ctx context.Context, fields map[string]string) (*Callback, error)
}
