package router

import (
	"github.com/coincart-shop/coincart/app/controllers"
	"github.com/coincart-shop/coincart/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Initialize checkout controller with repositories
	controllers.InitializeCheckoutController()

	// Initialize payment webhook controller with repositories
	controllers.InitializePaymentWebhookController()

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
