package models

import "time"

// PaymentWebhookEvent is the audit log of webhook deliveries, valid or not.
// The provider sends no delivery ID, so EventHash (a digest of the raw
// payload) deduplicates byte-identical re-deliveries.
type PaymentWebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"type:varchar(20);not null;index:ux_payment_webhook_events_provider_hash,unique,priority:1" json:"provider"`
	EventHash       string     `gorm:"type:varchar(191);not null;index:ux_payment_webhook_events_provider_hash,unique,priority:2" json:"event_hash"`
	OrderNumber     string     `gorm:"type:varchar(50);index" json:"order_number"`
	PayloadJSON     string     `gorm:"type:longtext;not null" json:"payload_json"`
	SignatureValid  bool       `gorm:"default:false;index" json:"signature_valid"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
