package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coincart-shop/coincart/app/repository"
	"github.com/coincart-shop/coincart/internal/pkg/cache"
	"github.com/coincart-shop/coincart/internal/pkg/database"
	"github.com/coincart-shop/coincart/internal/pkg/metrics/counter"
	"github.com/coincart-shop/coincart/internal/pkg/payment"
)

var webhookSettingRepo repository.SettingRepository

// InitializePaymentWebhookController wires the webhook controller with repositories
func InitializePaymentWebhookController() {
	webhookSettingRepo = repository.GetGlobalFactory().GetSettingRepository()
}

// HandlePaymentWebhook receives status callbacks from the payment provider.
// The response is always HTTP 200; the body tells accepted from rejected
// deliveries. The provider never retries, so nothing here may panic out.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	if c.Query("action") != "processWebhook" {
		return c.Status(fiber.StatusOK).SendString(payment.CallbackFailBody)
	}

	fields := webhookFormFields(c)
	if len(fields) == 0 {
		return c.Status(fiber.StatusOK).SendString(payment.CallbackFailBody)
	}

	settings, err := webhookSettingRepo.GetPaymentSettings()
	if err != nil {
		log.Printf("webhook: failed to load payment settings: %v", err)
		return c.Status(fiber.StatusOK).SendString(payment.CallbackFailBody)
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result := svc.ProcessCallback(ctx, settings, fields)
	outcome := counter.OutcomeRejected
	if result.Accepted {
		outcome = counter.OutcomeAccepted
	}
	if err := counter.AddWebhookDelivery(outcome); err != nil {
		log.Printf("webhook: failed to count delivery: %v", err)
	}
	if result.Accepted {
		// A settled invoice must not be paid again through a stale URL.
		if orderNumber, ok := fields["order_number"]; ok {
			if err := cache.DeleteInvoiceURL(orderNumber); err != nil {
				log.Printf("webhook: failed to drop cached invoice url for order %s: %v", orderNumber, err)
			}
		}
	}

	return c.Status(fiber.StatusOK).SendString(result.Body)
}

// webhookFormFields flattens the POST form into the string map the signature
// scheme is defined over. Repeated keys keep the first value.
func webhookFormFields(c *fiber.Ctx) map[string]string {
	fields := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if _, seen := fields[k]; !seen {
			fields[k] = string(value)
		}
	})
	return fields
}
