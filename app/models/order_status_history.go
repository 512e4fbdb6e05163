package models

import "time"

// OrderStatusHistory records every status transition of an order together
// with the comment shown to staff and whether the customer was notified.
type OrderStatusHistory struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OrderID          uint      `gorm:"not null;index" json:"order_id"`
	OrderStatusID    uint      `gorm:"not null" json:"order_status_id"`
	Comments         string    `gorm:"type:text" json:"comments"`
	CustomerNotified bool      `gorm:"default:false" json:"customer_notified"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
