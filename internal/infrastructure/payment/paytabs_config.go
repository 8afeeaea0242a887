package payment

import "errors"

const defaultPayTabsEndpoint = "https://secure.paytabs.com/payment/request"

// PayTabsConfig contains configuration for the PayTabs hosted payment API
type PayTabsConfig struct {
	// ProfileID is the PayTabs merchant profile ID
	ProfileID int
	// ServerKey authenticates outbound requests and signs inbound callbacks
	ServerKey string
	// Endpoint is the payment request URL; empty means the production endpoint
	Endpoint string
	// CallbackURL is the default server-to-server notification URL
	CallbackURL string
	// ReturnURL is the default browser return URL after the hosted page
	ReturnURL string
	// TimeoutSeconds bounds each HTTP round trip (default 30)
	TimeoutSeconds int
}

// Errors for configuration validation
var (
	ErrPayTabsMissingServerKey = errors.New("paytabs: server key not configured")
	ErrPayTabsMissingProfileID = errors.New("paytabs: missing profile ID")
	ErrPayTabsMissingCallback  = errors.New("paytabs: missing callback URL")
)

// Validate validates the configuration. A missing server key is a fatal
// operator error: the adapter refuses to construct rather than fail on
// the first request.
func (c *PayTabsConfig) Validate() error {
	if c.ServerKey == "" {
		return ErrPayTabsMissingServerKey
	}
	if c.ProfileID == 0 {
		return ErrPayTabsMissingProfileID
	}
	if c.CallbackURL == "" {
		return ErrPayTabsMissingCallback
	}
	if c.Endpoint == "" {
		c.Endpoint = defaultPayTabsEndpoint
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
