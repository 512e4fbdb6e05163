package router

import (
	"github.com/coincart-shop/coincart/app/controllers"
	"github.com/coincart-shop/coincart/internal/pkg/constants"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post(constants.PaymentWebhookRoute, controllers.HandlePaymentWebhook)

	// Plisio redirects the customer back via GET, outside any form flow
	app.Get(constants.CheckoutSuccessRoute, controllers.HandleCheckoutSuccess)
	app.Get(constants.CheckoutCancelRoute, controllers.HandleCheckoutCancel)
	app.Get(constants.CheckoutErrorRoute, controllers.HandleCheckoutError)
}
