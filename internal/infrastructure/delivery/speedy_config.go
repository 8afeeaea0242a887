package delivery

import "errors"

const defaultSpeedyBaseURL = "https://speedyorderdelivery.com/API"

// SpeedyConfig contains configuration for the SpeedyOrder courier API
type SpeedyConfig struct {
	// AuthKey authenticates API calls
	AuthKey string
	// ClientCode identifies the merchant account
	ClientCode string
	// ProfileID identifies the merchant profile used for bookings
	ProfileID string
	// BaseURL is the API root; empty means the production endpoint
	BaseURL string
	// Origin is the pickup city for outbound shipments
	Origin string
	// ServiceType is the delivery service booked by default
	ServiceType string
	// Product is the courier product booked by default
	Product string
	// TimeoutSeconds bounds each HTTP round trip (default 30)
	TimeoutSeconds int
}

// Errors for configuration validation
var (
	ErrSpeedyMissingAuthKey    = errors.New("speedy: auth key not configured")
	ErrSpeedyMissingClientCode = errors.New("speedy: missing client code")
	ErrSpeedyMissingProfileID  = errors.New("speedy: missing profile ID")
	ErrSpeedyMissingOrigin     = errors.New("speedy: missing origin city")
)

// Validate validates the configuration and applies defaults
func (c *SpeedyConfig) Validate() error {
	if c.AuthKey == "" {
		return ErrSpeedyMissingAuthKey
	}
	if c.ClientCode == "" {
		return ErrSpeedyMissingClientCode
	}
	if c.ProfileID == "" {
		return ErrSpeedyMissingProfileID
	}
	if c.Origin == "" {
		return ErrSpeedyMissingOrigin
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultSpeedyBaseURL
	}
	if c.ServiceType == "" {
		c.ServiceType = "Normal"
	}
	if c.Product == "" {
		c.Product = "Parcel"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
