package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a storefront order as seen by the payment flow. Catalogue and
// cart handling live elsewhere; the payment service only reads order totals
// and advances OrderStatusID.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PublicToken   string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"public_token"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string    `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	Currency      string    `gorm:"type:varchar(3);not null" json:"currency"`
	TotalIncTax   float64   `gorm:"type:decimal(15,4);not null" json:"total_inc_tax"`
	OrderStatusID uint      `gorm:"index" json:"order_status_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	OrderStatus *OrderStatus `gorm:"foreignKey:OrderStatusID" json:"order_status,omitempty"`
}

// BeforeCreate gives every order a public token used in checkout URLs, so
// order IDs are never exposed to customers directly.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.PublicToken == "" {
		o.PublicToken = uuid.New().String()
	}
	return nil
}

// Number returns the order number sent to the payment provider.
func (o *Order) Number() string {
	return strconv.FormatUint(uint64(o.ID), 10)
}
