package router

import (
	"strings"
	"time"

	"github.com/coincart-shop/coincart/app/controllers"
	"github.com/coincart-shop/coincart/internal/pkg/constants"
	"github.com/coincart-shop/coincart/internal/pkg/env"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			// API and webhook endpoints carry their own authentication
			return strings.HasPrefix(c.Path(), "/api/") ||
				strings.HasPrefix(c.Path(), "/callback/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get(constants.PublicRoute, controllers.HandleStart)
	group.Get(constants.CheckoutConfirmRoute, controllers.HandleCheckoutConfirmPage)
	group.Post(constants.CheckoutConfirmRoute, controllers.HandleCheckoutConfirm)
}
