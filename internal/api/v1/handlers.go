package apiv1

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coincart-shop/coincart/app/models"
	"github.com/coincart-shop/coincart/app/repository"
	"github.com/coincart-shop/coincart/internal/pkg/metrics/counter"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetOrderPayment returns the payment state of an order: its current status
// name plus the latest provider transaction, when one exists.
func (s *APIServer) GetOrderPayment(c *fiber.Ctx, number string) error {
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "order number missing"})
	}

	repos := repository.GetGlobalRepositories()
	order, err := repos.Order.GetByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Order not found"})
		}
		log.Printf("api: order lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	resp := OrderPayment{OrderNumber: order.Number()}
	if name, err := repos.Order.GetStatusName(order.OrderStatusID); err == nil {
		resp.StatusName = name
	}

	if txn, err := repos.Transaction.GetByOrderID(order.ID); err == nil {
		resp.Provider = txn.Provider
		resp.TxnStatus = txn.Status
		resp.Amount = txn.Amount
		d := txn.Date
		resp.Date = &d
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("api: transaction lookup for order %s failed: %v", number, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetPaymentSettings returns the payment module configuration for the admin
// UI. The stored API key is never echoed back.
func (s *APIServer) GetPaymentSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalRepositories().Setting.GetPaymentSettings()
	if err != nil {
		log.Printf("api: failed to load payment settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	return c.Status(fiber.StatusOK).JSON(PaymentSettingsResponse{
		Enabled:           settings.Enabled,
		APIKeySet:         settings.APIKey != "",
		SortOrder:         settings.SortOrder,
		PendingStatusID:   settings.PendingStatusID,
		PaidStatusID:      settings.PaidStatusID,
		CancelledStatusID: settings.CancelledStatusID,
		ExpiredStatusID:   settings.ExpiredStatusID,
	})
}

// GetWebhookStats returns the accumulated webhook delivery counters.
func (s *APIServer) GetWebhookStats(c *fiber.Ctx) error {
	stats, err := counter.WebhookDeliveryStats()
	if err != nil {
		log.Printf("api: failed to read webhook stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// PutPaymentSettings validates and stores the payment module configuration.
func (s *APIServer) PutPaymentSettings(c *fiber.Ctx) error {
	var req PaymentSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Malformed JSON body"})
	}

	settings := &models.PaymentSettings{
		Enabled:           req.Enabled,
		APIKey:            req.APIKey,
		SortOrder:         req.SortOrder,
		PendingStatusID:   req.PendingStatusID,
		PaidStatusID:      req.PaidStatusID,
		CancelledStatusID: req.CancelledStatusID,
		ExpiredStatusID:   req.ExpiredStatusID,
	}
	if err := settings.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := repository.GetGlobalRepositories().Setting.SavePaymentSettings(settings); err != nil {
		log.Printf("api: failed to save payment settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
