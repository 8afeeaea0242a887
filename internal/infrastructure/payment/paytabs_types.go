package payment

// paytabsCustomerDetails is the customer block of a payment request
type paytabsCustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Street1 string `json:"street1"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
	IP      string `json:"ip"`
}

// paytabsPaymentRequest is the outbound payment-creation payload
type paytabsPaymentRequest struct {
	ProfileID       int                    `json:"profile_id"`
	TranType        string                 `json:"tran_type"`
	TranClass       string                 `json:"tran_class"`
	CartID          string                 `json:"cart_id"`
	CartDescription string                 `json:"cart_description"`
	CartCurrency    string                 `json:"cart_currency"`
	CartAmount      float64                `json:"cart_amount"`
	Callback        string                 `json:"callback"`
	Return          string                 `json:"return"`
	CustomerDetails paytabsCustomerDetails `json:"customer_details"`
}

// paytabsPaymentResult is the inline result block for direct captures
type paytabsPaymentResult struct {
	ResponseStatus  string `json:"response_status"`
	ResponseCode    string `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	AcquirerMessage string `json:"acquirer_message"`
	AcquirerRRN     string `json:"acquirer_rrn"`
	TransactionTime string `json:"transaction_time"`
}

// paytabsPaymentResponse covers both response shapes: hosted-page
// responses carry redirect_url, direct captures carry payment_result.
type paytabsPaymentResponse struct {
	TranRef       string                `json:"tran_ref"`
	CartID        string                `json:"cart_id"`
	RedirectURL   string                `json:"redirect_url"`
	PaymentResult *paytabsPaymentResult `json:"payment_result"`
}

// paytabsErrorResponse is the gateway's error shape for non-2xx responses
type paytabsErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PayTabs response status codes
const (
	paytabsStatusAuthorized = "A"
	paytabsStatusHeld       = "H"
	paytabsStatusPending    = "P"
	paytabsStatusVoided     = "V"
	paytabsStatusDeclined   = "D"
	paytabsStatusExpired    = "E"
)

// Callback field names
const (
	callbackFieldSignature = "signature"
	callbackFieldTranRef   = "tranRef"
	callbackFieldCartID    = "cartId"
	callbackFieldStatus    = "respStatus"
	callbackFieldCode      = "respCode"
	callbackFieldMessage   = "respMessage"
	callbackFieldRRN       = "acquirerRRN"
	callbackFieldAcqMsg    = "acquirerMessage"
	callbackFieldEmail     = "customerEmail"
)
