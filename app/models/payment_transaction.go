package models

import "time"

// PaymentTransaction stores the provider-reported payment state of an order.
// There is at most one row per order and provider; webhook re-deliveries
// replace it (last write wins), which keeps concurrent provider retries for
// the same order harmless without in-process locking.
type PaymentTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index:ux_payment_transactions_order_provider,unique,priority:1" json:"order_id"`
	Provider   string    `gorm:"type:varchar(20);not null;default:'plisio';index:ux_payment_transactions_order_provider,unique,priority:2" json:"provider"`
	FullJSON   string    `gorm:"type:longtext;not null" json:"full_json"`
	StatusCode *uint     `json:"status_code,omitempty"`
	Status     string    `gorm:"type:varchar(50);not null" json:"status"`
	Amount     float64   `gorm:"type:decimal(25,8);not null" json:"amount"`
	Comments   string    `gorm:"type:text" json:"comments"`
	Date       time.Time `gorm:"not null" json:"date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
