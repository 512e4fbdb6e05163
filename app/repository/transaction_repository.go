package repository

import (
	"github.com/coincart-shop/coincart/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionRepository implements the TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new payment transaction repository instance
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// UpsertByOrder keeps exactly one transaction row per order and provider.
// Provider retries for the same order therefore converge on the latest
// delivery instead of stacking up rows.
func (r *transactionRepository) UpsertByOrder(txn *models.PaymentTransaction) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "order_id"},
			{Name: "provider"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_json",
			"status_code",
			"status",
			"amount",
			"comments",
			"date",
			"updated_at",
		}),
	}).Create(txn).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("order_id = ? AND provider = ?", txn.OrderID, txn.Provider).
		First(txn).Error
}

func (r *transactionRepository) GetByOrderID(orderID uint) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	err := r.db.Where("order_id = ?", orderID).First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
