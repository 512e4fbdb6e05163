package repository

import (
	"github.com/coincart-shop/coincart/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("OrderStatus").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(number string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("OrderStatus").Where("id = ?", number).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByPublicToken(token string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("OrderStatus").Where("public_token = ?", token).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus writes the new status to the order and appends the transition to
// the status history in one transaction.
func (r *orderRepository) SetStatus(orderID, statusID uint, comment string, customerNotified bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Update("order_status_id", statusID).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:          orderID,
			OrderStatusID:    statusID,
			Comments:         comment,
			CustomerNotified: customerNotified,
		}
		return tx.Create(&history).Error
	})
}

func (r *orderRepository) GetStatusName(statusID uint) (string, error) {
	var status models.OrderStatus
	if err := r.db.First(&status, statusID).Error; err != nil {
		return "", err
	}
	return status.Name, nil
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
