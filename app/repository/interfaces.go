package repository

import (
	"github.com/coincart-shop/coincart/app/models"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByNumber(number string) (*models.Order, error)
	GetByPublicToken(token string) (*models.Order, error)
	// SetStatus advances the order status and appends a history row.
	SetStatus(orderID, statusID uint, comment string, customerNotified bool) error
	GetStatusName(statusID uint) (string, error)
	Update(order *models.Order) error
}

// TransactionRepository defines the interface for payment transaction storage
type TransactionRepository interface {
	// UpsertByOrder replaces the transaction row of an order (last write wins).
	UpsertByOrder(txn *models.PaymentTransaction) error
	GetByOrderID(orderID uint) (*models.PaymentTransaction, error)
}

// WebhookEventRepository defines the interface for the webhook delivery audit log
type WebhookEventRepository interface {
	// RecordIfNew inserts a delivery unless a byte-identical one was seen
	// before; it returns whether a row was created and the stored row.
	RecordIfNew(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	GetPaymentSettings() (*models.PaymentSettings, error)
	SavePaymentSettings(settings *models.PaymentSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Order        OrderRepository
	Transaction  TransactionRepository
	WebhookEvent WebhookEventRepository
	Setting      SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:        NewOrderRepository(db),
		Transaction:  NewTransactionRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
		Setting:      NewSettingRepository(db),
	}
}
