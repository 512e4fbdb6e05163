package models

// Order status groups, matching the storefront's fulfillment pipeline.
const (
	OrderStatusGroupNew       = 1
	OrderStatusGroupPaid      = 4
	OrderStatusGroupCancelled = 7
)

// OrderStatus is a store-configured status code. The payment module never
// hardcodes IDs; the mapping from provider statuses to these rows lives in
// the payment settings.
type OrderStatus struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	GroupID int    `gorm:"not null;index" json:"group_id"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
}

func (OrderStatus) TableName() string {
	return "order_statuses"
}
