package delivery

// speedyCreateOrderRequest is the outbound booking payload
type speedyCreateOrderRequest struct {
	AuthKey            string  `json:"auth_key"`
	ClientCode         string  `json:"client_code"`
	ProfileID          string  `json:"profile_id"`
	ServiceType        string  `json:"service_type"`
	Product            string  `json:"product"`
	Origin             string  `json:"origin"`
	TrackingNo         string  `json:"tracking_no"`
	ReceiverName       string  `json:"receiver_name"`
	ReceiverPhone      string  `json:"receiver_phone"`
	ReceiverEmail      string  `json:"receiver_email"`
	ReceiverAddress    string  `json:"receiver_address"`
	Destination        string  `json:"destination"`
	Pieces             int     `json:"pieces"`
	Weight             float64 `json:"weight"`
	OrderDate          string  `json:"order_date"`
	CollectionAmount   string  `json:"collection_amount"`
	ProductDescription string  `json:"product_description,omitempty"`
	SpecialInstruction string  `json:"special_instruction,omitempty"`
	OrderID            string  `json:"order_id"`
}

// speedyCreateOrderResponse is the booking acknowledgment. The courier
// echoes tracking_no as either a string or a number depending on the
// account, so it is decoded loosely.
type speedyCreateOrderResponse struct {
	TrackingNo any    `json:"tracking_no"`
	ID         int    `json:"id"`
	Message    string `json:"message"`
}

// speedyTrackRequest is the tracking query payload
type speedyTrackRequest struct {
	TrackingNo string `json:"tracking_no"`
}

// speedyTrackingEvent is one scan record in the courier's history
type speedyTrackingEvent struct {
	TrackingNo string `json:"tracking_no"`
	Status     string `json:"status"`
	Created    string `json:"created"`
}

// speedyCancelResponse is the cancellation acknowledgment
type speedyCancelResponse struct {
	TrackingNo string `json:"tracking_no"`
	Message    string `json:"message"`
}

// speedyService is one delivery service in the courier's catalog
type speedyService struct {
	ID          string `json:"id"`
	ServiceType string `json:"service_type"`
	ServiceCode string `json:"service_code"`
	ProductID   string `json:"product_id"`
	Icon        string `json:"icon"`
}

// speedyCatalogResponse is the ProductAndService.php response
type speedyCatalogResponse struct {
	Services []speedyService `json:"services"`
}

// speedyCity is one deliverable city
type speedyCity struct {
	ID       string `json:"id"`
	CityName string `json:"city_name"`
}

// speedyCitiesResponse is the GetCitiesList.php response
type speedyCitiesResponse struct {
	Response int          `json:"response"`
	Data     []speedyCity `json:"data"`
}
