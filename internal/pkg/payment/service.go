package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/coincart-shop/coincart/app/models"
	"github.com/coincart-shop/coincart/app/repository"
	"github.com/coincart-shop/coincart/internal/pkg/plisio"
	"gorm.io/gorm"
)

// Provider is the payment provider identifier used in persisted records.
const Provider = "plisio"

// Fixed webhook response bodies. The provider treats any HTTP 200 as
// received regardless of body, so the body is the only distinction between
// accepted and rejected deliveries; nothing is ever retried.
const (
	CallbackAckBody  = "OK"
	CallbackFailBody = "Verify callback data failed"
)

// InvoiceCreator is the part of the provider client used at checkout.
// Satisfied by *plisio.Client.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, in plisio.InvoiceRequest) (*plisio.Invoice, error)
}

// Service drives the two payment flows: invoice creation at checkout and
// the webhook state machine that advances order status.
type Service struct {
	orders   repository.OrderRepository
	txns     repository.TransactionRepository
	events   repository.WebhookEventRepository
	notifier Notifier
}

// NewService creates a payment service from injected collaborators.
func NewService(orders repository.OrderRepository, txns repository.TransactionRepository, events repository.WebhookEventRepository, notifier Notifier) *Service {
	return &Service{orders: orders, txns: txns, events: events, notifier: notifier}
}

// NewServiceFromDB creates a payment service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Order, repos.Transaction, repos.WebhookEvent, NewMailNotifier())
}

// CheckoutURLs are the storefront endpoints handed to the provider.
type CheckoutURLs struct {
	Callback string
	Cancel   string
	Success  string
}

// BuildInvoiceRequest assembles the provider request for an order. The order
// total is rounded to two decimals before formatting.
func BuildInvoiceRequest(order *models.Order, urls CheckoutURLs) plisio.InvoiceRequest {
	return plisio.InvoiceRequest{
		OrderName:      "Order #" + order.Number(),
		OrderNumber:    order.Number(),
		SourceAmount:   FormatAmount(order.TotalIncTax),
		SourceCurrency: order.Currency,
		CallbackURL:    urls.Callback,
		CancelURL:      urls.Cancel,
		SuccessURL:     urls.Success,
		Email:          order.CustomerEmail,
		Plugin:         plisio.PluginName,
		Version:        plisio.PluginVersion,
	}
}

// BeginCheckout creates a hosted invoice for the order and returns the URL
// the customer is redirected to. One attempt per checkout confirmation.
func (s *Service) BeginCheckout(ctx context.Context, client InvoiceCreator, order *models.Order, urls CheckoutURLs) (string, error) {
	inv, err := client.CreateInvoice(ctx, BuildInvoiceRequest(order, urls))
	if err != nil {
		return "", err
	}
	return inv.InvoiceURL, nil
}

// CallbackResult is the outward signal of a processed webhook delivery.
type CallbackResult struct {
	Accepted bool
	Body     string
}

// ProcessCallback runs the webhook state machine for one delivery: audit,
// authenticate, parse, map the provider status and advance the order. An
// invalid signature never causes an order mutation; authenticated but
// malformed payloads are acknowledged and ignored.
func (s *Service) ProcessCallback(ctx context.Context, settings *models.PaymentSettings, fields map[string]string) CallbackResult {
	_ = ctx

	payloadJSON, _ := json.Marshal(fields)
	signatureValid := plisio.VerifyCallbackData(fields, settings.APIKey)

	sum := sha256.Sum256(payloadJSON)
	_, stored, err := s.events.RecordIfNew(&models.PaymentWebhookEvent{
		Provider:       Provider,
		EventHash:      hex.EncodeToString(sum[:]),
		OrderNumber:    fields["order_number"],
		PayloadJSON:    string(payloadJSON),
		SignatureValid: signatureValid,
	})
	if err != nil {
		log.Printf("payment: failed to record webhook event: %v", err)
	}

	if !signatureValid {
		s.markProcessed(stored, errors.New("invalid callback signature"))
		return CallbackResult{Body: CallbackFailBody}
	}

	cb, err := ParseCallback(fields)
	if err != nil {
		// Authenticated but malformed: acknowledge without touching order state.
		s.markProcessed(stored, err)
		return CallbackResult{Accepted: true, Body: CallbackAckBody}
	}

	order, err := s.orders.GetByNumber(cb.OrderNumber)
	if err != nil {
		s.markProcessed(stored, fmt.Errorf("order %s not found: %w", cb.OrderNumber, err))
		return CallbackResult{Accepted: true, Body: CallbackAckBody}
	}

	state, comment := plisio.MapStatus(cb.Status)

	var statusCode *uint
	if statusID, ok := statusIDFor(settings, state); ok {
		statusCode = &statusID
		if err := s.orders.SetStatus(order.ID, statusID, comment, false); err != nil {
			s.markProcessed(stored, err)
			return CallbackResult{Accepted: true, Body: CallbackAckBody}
		}

		statusName, nameErr := s.orders.GetStatusName(statusID)
		if nameErr != nil {
			statusName = state.String()
		}
		if err := s.notifier.NotifyStatusChange(order, statusName, comment); err != nil {
			log.Printf("payment: failed to notify customer for order %s: %v", order.Number(), err)
		}
	}

	txn := &models.PaymentTransaction{
		OrderID:    order.ID,
		Provider:   Provider,
		FullJSON:   string(payloadJSON),
		StatusCode: statusCode,
		Status:     cb.Status,
		Amount:     cb.Amount,
		Comments:   cb.Comment,
		Date:       time.Now(),
	}
	if err := s.txns.UpsertByOrder(txn); err != nil {
		s.markProcessed(stored, err)
		return CallbackResult{Accepted: true, Body: CallbackAckBody}
	}

	s.markProcessed(stored, nil)
	return CallbackResult{Accepted: true, Body: CallbackAckBody}
}

func (s *Service) markProcessed(event *models.PaymentWebhookEvent, procErr error) {
	if event == nil {
		return
	}
	msg := ""
	if procErr != nil {
		msg = procErr.Error()
	}
	if err := s.events.MarkProcessed(event.ID, msg); err != nil {
		log.Printf("payment: failed to mark webhook event %d processed: %v", event.ID, err)
	}
}

// statusIDFor resolves the configured order-status row for a payment state.
// Unmapped provider statuses resolve to nothing: the transaction record is
// still written, but the order status stays untouched.
func statusIDFor(settings *models.PaymentSettings, state plisio.OrderState) (uint, bool) {
	switch state {
	case plisio.StatePaid:
		return settings.PaidStatusID, settings.PaidStatusID != 0
	case plisio.StatePending:
		return settings.PendingStatusID, settings.PendingStatusID != 0
	case plisio.StateCancelled:
		return settings.CancelledStatusID, settings.CancelledStatusID != 0
	case plisio.StateExpired:
		return settings.ExpiredStatusID, settings.ExpiredStatusID != 0
	default:
		return 0, false
	}
}
