package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coincart-shop/coincart/internal/pkg/middleware"
)

// ServerInterface is the contract implemented by the API server.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetOrderPayment(c *fiber.Ctx, number string) error
	GetPaymentSettings(c *fiber.Ctx) error
	PutPaymentSettings(c *fiber.Ctx) error
	GetWebhookStats(c *fiber.Ctx) error
}

// RegisterHandlers attaches the v1 routes to the given router group.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)
	router.Get("/orders/:number/payment", func(c *fiber.Ctx) error {
		return si.GetOrderPayment(c, c.Params("number"))
	})

	admin := router.Group("/admin", middleware.AdminAPIKeyMiddleware())
	admin.Get("/settings/payment", si.GetPaymentSettings)
	admin.Put("/settings/payment", si.PutPaymentSettings)
	admin.Get("/stats/webhooks", si.GetWebhookStats)
}
