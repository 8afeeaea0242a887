package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/noorfashion/backend/internal/domain/delivery"
)

// speedyTimeFormat is the courier's timestamp layout for order dates and
// tracking events
const speedyTimeFormat = "2006-01-02 15:04:05"

// SpeedyAdapter implements the delivery.Courier port for SpeedyOrder
type SpeedyAdapter struct {
	config     *SpeedyConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewSpeedyAdapter creates a new SpeedyOrder adapter
func NewSpeedyAdapter(config *SpeedyConfig) (*SpeedyAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SpeedyAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// CreateShipment books a shipment. The tracking number is generated
// locally so the storefront can reference the shipment before the
// courier has processed the booking.
func (a *SpeedyAdapter) CreateShipment(ctx context.Context, req *delivery.CreateShipmentRequest) (*delivery.CreateShipmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pieces := req.Pieces
	if pieces <= 0 {
		pieces = 1
	}
	collection := req.CollectionAmount
	if collection == "" {
		collection = "0.00"
	}

	trackingNumber := GenerateTrackingNumber()
	body := speedyCreateOrderRequest{
		AuthKey:            a.config.AuthKey,
		ClientCode:         a.config.ClientCode,
		ProfileID:          a.config.ProfileID,
		ServiceType:        a.config.ServiceType,
		Product:            a.config.Product,
		Origin:             a.config.Origin,
		TrackingNo:         trackingNumber,
		ReceiverName:       req.Receiver.Name,
		ReceiverPhone:      req.Receiver.Phone,
		ReceiverEmail:      req.Receiver.Email,
		ReceiverAddress:    req.Receiver.Address,
		Destination:        req.Receiver.City,
		Pieces:             pieces,
		Weight:             EstimateWeight(pieces),
		OrderDate:          FormatOrderDate(a.now()),
		CollectionAmount:   collection,
		ProductDescription: req.Description,
		SpecialInstruction: req.Instructions,
		OrderID:            req.OrderID,
	}

	var parsed speedyCreateOrderResponse
	if err := a.postJSON(ctx, "/CreateOrder.php", body, &parsed); err != nil {
		return nil, err
	}

	// Prefer the courier's echo when present, in whichever type it sends
	confirmed := trackingNumber
	switch v := parsed.TrackingNo.(type) {
	case string:
		if v != "" {
			confirmed = v
		}
	case float64:
		confirmed = strconv.FormatInt(int64(v), 10)
	}

	return &delivery.CreateShipmentResponse{
		TrackingNumber: confirmed,
		CourierOrderID: strconv.Itoa(parsed.ID),
		Message:        parsed.Message,
	}, nil
}

// TrackShipment returns the scan history for a tracking number, oldest
// first as the courier reports it
func (a *SpeedyAdapter) TrackShipment(ctx context.Context, trackingNumber string) ([]delivery.TrackingEvent, error) {
	if trackingNumber == "" {
		return nil, delivery.ErrMissingTrackingNumber
	}

	var parsed []speedyTrackingEvent
	if err := a.postJSON(ctx, "/TrackOrder.php", speedyTrackRequest{TrackingNo: trackingNumber}, &parsed); err != nil {
		return nil, err
	}

	events := make([]delivery.TrackingEvent, 0, len(parsed))
	for _, e := range parsed {
		created, err := time.ParseInLocation(speedyTimeFormat, e.Created, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: bad event timestamp %q", delivery.ErrCourierInvalidResponse, e.Created)
		}
		events = append(events, delivery.TrackingEvent{
			TrackingNumber: e.TrackingNo,
			Status:         e.Status,
			Created:        created,
		})
	}
	return events, nil
}

// CancelShipment requests cancellation of a booked shipment
func (a *SpeedyAdapter) CancelShipment(ctx context.Context, trackingNumber string) (*delivery.CancelShipmentResponse, error) {
	if trackingNumber == "" {
		return nil, delivery.ErrMissingTrackingNumber
	}

	query := url.Values{}
	query.Set("auth_key", a.config.AuthKey)
	query.Set("tracking_no", trackingNumber)
	endpoint := a.config.BaseURL + "/CancelOrder.php?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("speedy: failed to create request: %w", err)
	}

	respBody, err := a.do(httpReq)
	if err != nil {
		return nil, err
	}

	var parsed speedyCancelResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", delivery.ErrCourierInvalidResponse, err)
	}

	return &delivery.CancelShipmentResponse{
		TrackingNumber: parsed.TrackingNo,
		Message:        parsed.Message,
	}, nil
}

// ListServices returns the courier's delivery service catalog
func (a *SpeedyAdapter) ListServices(ctx context.Context) ([]delivery.Service, error) {
	body := map[string]string{
		"auth_key":    a.config.AuthKey,
		"client_code": a.config.ClientCode,
	}

	var parsed speedyCatalogResponse
	if err := a.postJSON(ctx, "/ProductAndService.php", body, &parsed); err != nil {
		return nil, err
	}

	services := make([]delivery.Service, 0, len(parsed.Services))
	for _, s := range parsed.Services {
		services = append(services, delivery.Service{
			ID:          s.ID,
			ServiceType: s.ServiceType,
			ServiceCode: s.ServiceCode,
			ProductID:   s.ProductID,
		})
	}
	return services, nil
}

// ListCities returns the courier's deliverable cities
func (a *SpeedyAdapter) ListCities(ctx context.Context) ([]delivery.City, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.BaseURL+"/GetCitiesList.php", nil)
	if err != nil {
		return nil, fmt.Errorf("speedy: failed to create request: %w", err)
	}

	respBody, err := a.do(httpReq)
	if err != nil {
		return nil, err
	}

	var parsed speedyCitiesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", delivery.ErrCourierInvalidResponse, err)
	}

	cities := make([]delivery.City, 0, len(parsed.Data))
	for _, c := range parsed.Data {
		cities = append(cities, delivery.City{ID: c.ID, Name: c.CityName})
	}
	return cities, nil
}

// postJSON posts a JSON body to an API path and decodes the response
func (a *SpeedyAdapter) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("speedy: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("speedy: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, err := a.do(httpReq)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", delivery.ErrCourierInvalidResponse, err)
	}
	return nil
}

// do executes a request and returns the body. Non-2xx responses carry
// the courier's error text verbatim.
func (a *SpeedyAdapter) do(req *http.Request) ([]byte, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", delivery.ErrCourierUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speedy: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(respBody) > 0 {
			return nil, fmt.Errorf("%w: %s", delivery.ErrCourierRequestFailed, string(respBody))
		}
		return nil, fmt.Errorf("%w: HTTP %d", delivery.ErrCourierRequestFailed, resp.StatusCode)
	}
	return respBody, nil
}

// GenerateTrackingNumber produces a locally unique tracking number: the
// current unix-millisecond timestamp followed by three random digits.
// Each call yields a fresh number, so a retried booking never reuses
// the tracking number of a failed attempt.
func GenerateTrackingNumber() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("%s%03d", timestamp, rand.Intn(1000))
}

// EstimateWeight estimates shipment weight as half a kilogram per piece
func EstimateWeight(pieces int) float64 {
	return float64(pieces) * 0.5
}

// FormatOrderDate formats a timestamp in the courier's expected layout
func FormatOrderDate(t time.Time) string {
	return t.Format(speedyTimeFormat)
}

// Ensure SpeedyAdapter implements the Courier port
var _ delivery.Courier = (*SpeedyAdapter)(nil)
