package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment settings keys persisted in the settings table.
const (
	SettingPaymentEnabled           = "payment_plisio_enabled"
	SettingPaymentAPIKey            = "payment_plisio_api_key"
	SettingPaymentSortOrder         = "payment_plisio_sort_order"
	SettingPaymentPendingStatusID   = "payment_plisio_pending_status_id"
	SettingPaymentPaidStatusID      = "payment_plisio_paid_status_id"
	SettingPaymentCancelledStatusID = "payment_plisio_cancelled_status_id"
	SettingPaymentExpiredStatusID   = "payment_plisio_expired_status_id"
)

// PaymentSettings is the store-side configuration of the payment module:
// whether it is offered at checkout, the provider API key, the display sort
// order and the order-status row each provider status maps to.
type PaymentSettings struct {
	Enabled           bool   `json:"enabled"`
	APIKey            string `json:"api_key" validate:"max=255"`
	SortOrder         int    `json:"sort_order" validate:"gte=0"`
	PendingStatusID   uint   `json:"pending_status_id" validate:"required"`
	PaidStatusID      uint   `json:"paid_status_id" validate:"required"`
	CancelledStatusID uint   `json:"cancelled_status_id" validate:"required"`
	ExpiredStatusID   uint   `json:"expired_status_id" validate:"required"`
}

// Validate validates the payment settings. An enabled module additionally
// requires an API key.
func (s *PaymentSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return err
	}
	if s.Enabled && s.APIKey == "" {
		return fmt.Errorf("payment module is enabled but no API key is configured")
	}
	return nil
}

// LoadPaymentSettings reads the payment configuration from the settings
// table, falling back to a disabled module when rows are missing.
func LoadPaymentSettings(db *gorm.DB) (*PaymentSettings, error) {
	ps := &PaymentSettings{}

	var settings []Setting
	if err := db.Where("setting_key LIKE ?", "payment_plisio_%").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load payment settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case SettingPaymentEnabled:
			ps.Enabled = setting.Value == "true"
		case SettingPaymentAPIKey:
			ps.APIKey = setting.Value
		case SettingPaymentSortOrder:
			if v, err := strconv.Atoi(setting.Value); err == nil {
				ps.SortOrder = v
			}
		case SettingPaymentPendingStatusID:
			ps.PendingStatusID = parseStatusID(setting.Value)
		case SettingPaymentPaidStatusID:
			ps.PaidStatusID = parseStatusID(setting.Value)
		case SettingPaymentCancelledStatusID:
			ps.CancelledStatusID = parseStatusID(setting.Value)
		case SettingPaymentExpiredStatusID:
			ps.ExpiredStatusID = parseStatusID(setting.Value)
		}
	}

	return ps, nil
}

// SavePaymentSettings validates and persists the payment configuration.
func SavePaymentSettings(db *gorm.DB, ps *PaymentSettings) error {
	if err := ps.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	values := map[string]string{
		SettingPaymentEnabled:           strconv.FormatBool(ps.Enabled),
		SettingPaymentAPIKey:            ps.APIKey,
		SettingPaymentSortOrder:         strconv.Itoa(ps.SortOrder),
		SettingPaymentPendingStatusID:   strconv.FormatUint(uint64(ps.PendingStatusID), 10),
		SettingPaymentPaidStatusID:      strconv.FormatUint(uint64(ps.PaidStatusID), 10),
		SettingPaymentCancelledStatusID: strconv.FormatUint(uint64(ps.CancelledStatusID), 10),
		SettingPaymentExpiredStatusID:   strconv.FormatUint(uint64(ps.ExpiredStatusID), 10),
	}

	for key, value := range values {
		var setting Setting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				setting = Setting{
					Key:   key,
					Value: value,
					Type:  getSettingType(key),
				}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
			} else {
				return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
			}
		} else {
			setting.Value = value
			if err := db.Save(&setting).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
	}

	return nil
}

// getSettingType returns the type of a setting based on its key
func getSettingType(key string) string {
	switch key {
	case SettingPaymentEnabled:
		return "boolean"
	case SettingPaymentSortOrder, SettingPaymentPendingStatusID, SettingPaymentPaidStatusID,
		SettingPaymentCancelledStatusID, SettingPaymentExpiredStatusID:
		return "integer"
	default:
		return "string"
	}
}

func parseStatusID(value string) uint {
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
