package apiv1

import "time"

// Pong is the response of the ping endpoint.
type Pong struct {
	Ping string `json:"ping"`
}

// OrderPayment is the public payment state of an order.
type OrderPayment struct {
	OrderNumber string     `json:"order_number"`
	StatusName  string     `json:"status_name,omitempty"`
	Provider    string     `json:"provider,omitempty"`
	TxnStatus   string     `json:"txn_status,omitempty"`
	Amount      float64    `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// PaymentSettingsRequest is the admin payload for updating the payment
// module configuration.
type PaymentSettingsRequest struct {
	Enabled           bool   `json:"enabled"`
	APIKey            string `json:"api_key"`
	SortOrder         int    `json:"sort_order"`
	PendingStatusID   uint   `json:"pending_status_id"`
	PaidStatusID      uint   `json:"paid_status_id"`
	CancelledStatusID uint   `json:"cancelled_status_id"`
	ExpiredStatusID   uint   `json:"expired_status_id"`
}

// PaymentSettingsResponse mirrors the stored configuration. The API key is
// masked on the way out.
type PaymentSettingsResponse struct {
	Enabled           bool   `json:"enabled"`
	APIKeySet         bool   `json:"api_key_set"`
	SortOrder         int    `json:"sort_order"`
	PendingStatusID   uint   `json:"pending_status_id"`
	PaidStatusID      uint   `json:"paid_status_id"`
	CancelledStatusID uint   `json:"cancelled_status_id"`
	ExpiredStatusID   uint   `json:"expired_status_id"`
}
