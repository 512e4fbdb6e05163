package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/coincart-shop/coincart/app/repository"
	"github.com/coincart-shop/coincart/internal/pkg/cache"
	"github.com/coincart-shop/coincart/internal/pkg/constants"
	"github.com/coincart-shop/coincart/internal/pkg/database"
	"github.com/coincart-shop/coincart/internal/pkg/env"
	"github.com/coincart-shop/coincart/internal/pkg/payment"
	"github.com/coincart-shop/coincart/internal/pkg/plisio"
	"github.com/coincart-shop/coincart/internal/pkg/session"
)

const cartSessionKey = "cart_id"

var (
	checkoutOrderRepo   repository.OrderRepository
	checkoutSettingRepo repository.SettingRepository
)

// InitializeCheckoutController wires the checkout controller with repositories
func InitializeCheckoutController() {
	factory := repository.GetGlobalFactory()
	checkoutOrderRepo = factory.GetOrderRepository()
	checkoutSettingRepo = factory.GetSettingRepository()
}

func HandleStart(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Flash": flash.Get(c),
	})
}

// HandleCheckoutConfirmPage shows the order summary with the crypto payment
// button. The order is addressed by its public token, never by its ID.
func HandleCheckoutConfirmPage(c *fiber.Ctx) error {
	order, err := checkoutOrderRepo.GetByPublicToken(strings.TrimSpace(c.Query("order")))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("checkout/error", fiber.Map{
			"Messages": []string{"Order not found"},
		})
	}

	settings, err := checkoutSettingRepo.GetPaymentSettings()
	if err != nil {
		log.Printf("checkout: failed to load payment settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).Render("checkout/error", fiber.Map{
			"Messages": []string{"Payment is temporarily unavailable"},
		})
	}

	return c.Render("checkout/confirm", fiber.Map{
		"Order":          order,
		"Amount":         payment.FormatAmount(order.TotalIncTax),
		"PaymentEnabled": settings.Enabled,
		"Flash":          flash.Get(c),
		"CSRFToken":      c.Locals("csrf"),
	})
}

// HandleCheckoutConfirm creates the hosted invoice and redirects the customer
// to the provider's payment page. A reload within the invoice lifetime reuses
// the cached invoice URL instead of creating a second invoice.
func HandleCheckoutConfirm(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.FormValue("order"))
	order, err := checkoutOrderRepo.GetByPublicToken(token)
	if err != nil {
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Order not found"}).
			Redirect(constants.CheckoutErrorRoute)
	}

	settings, err := checkoutSettingRepo.GetPaymentSettings()
	if err != nil || !settings.Enabled || settings.APIKey == "" {
		if err != nil {
			log.Printf("checkout: failed to load payment settings: %v", err)
		}
		return flash.WithError(c, fiber.Map{"type": "error", "message": "Crypto payment is not available"}).
			Redirect(constants.CheckoutErrorRoute)
	}

	if url := cache.GetInvoiceURL(order.Number()); url != "" {
		return c.Redirect(url, fiber.StatusSeeOther)
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	client := plisio.NewClient(settings.APIKey)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	invoiceURL, err := svc.BeginCheckout(ctx, client, order, checkoutURLs(c, token))
	if err != nil {
		var invErr *plisio.InvoiceError
		msg := "Invoice creation failed"
		if errors.As(err, &invErr) && len(invErr.Messages) > 0 {
			msg = strings.Join(invErr.Messages, ", ")
		}
		log.Printf("checkout: invoice creation for order %s failed: %v", order.Number(), err)
		return flash.WithError(c, fiber.Map{"type": "error", "message": msg}).
			Redirect(constants.CheckoutErrorRoute)
	}

	if err := cache.SetInvoiceURL(order.Number(), invoiceURL); err != nil {
		log.Printf("checkout: failed to cache invoice url for order %s: %v", order.Number(), err)
	}

	return c.Redirect(invoiceURL, fiber.StatusSeeOther)
}

// HandleCheckoutSuccess is where the provider sends the customer after
// payment. The cart is cleared here, not in the webhook: the webhook may
// arrive before or after this redirect.
func HandleCheckoutSuccess(c *fiber.Ctx) error {
	if err := session.DeleteSessionValue(c, cartSessionKey); err != nil {
		log.Printf("checkout: failed to clear cart from session: %v", err)
	}
	return c.Render("checkout/success", fiber.Map{
		"Flash": flash.Get(c),
	})
}

func HandleCheckoutCancel(c *fiber.Ctx) error {
	return c.Render("checkout/cancel", fiber.Map{
		"Flash": flash.Get(c),
	})
}

func HandleCheckoutError(c *fiber.Ctx) error {
	fm := flash.Get(c)
	var messages []string
	if msg, ok := fm["message"].(string); ok && msg != "" {
		messages = append(messages, msg)
	}
	return c.Render("checkout/error", fiber.Map{
		"Messages": messages,
	})
}

// checkoutURLs builds the absolute storefront endpoints handed to the
// provider. PUBLIC_DOMAIN wins over the request base URL so invoices carry
// the canonical domain even behind proxies.
func checkoutURLs(c *fiber.Ctx, orderToken string) payment.CheckoutURLs {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = c.BaseURL()
	}
	return payment.CheckoutURLs{
		Callback: fmt.Sprintf("%s%s?action=processWebhook", base, constants.PaymentWebhookRoute),
		Cancel:   fmt.Sprintf("%s%s?order=%s", base, constants.CheckoutCancelRoute, orderToken),
		Success:  fmt.Sprintf("%s%s?order=%s", base, constants.CheckoutSuccessRoute, orderToken),
	}
}
