package payment

import (
	"fmt"
	"html"

	"github.com/coincart-shop/coincart/app/models"
	"github.com/coincart-shop/coincart/internal/pkg/mail"
)

// Notifier sends customer-facing order notifications. It is injected so the
// webhook state machine can be tested without an SMTP relay.
type Notifier interface {
	NotifyStatusChange(order *models.Order, statusName, comment string) error
}

type mailNotifier struct{}

// NewMailNotifier returns a Notifier backed by the store SMTP relay.
func NewMailNotifier() Notifier {
	return &mailNotifier{}
}

func (mailNotifier) NotifyStatusChange(order *models.Order, statusName, comment string) error {
	subject := fmt.Sprintf("Your order #%s: %s", order.Number(), statusName)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>the status of your order #%s changed to <strong>%s</strong>.</p><p>%s</p>",
		html.EscapeString(order.CustomerName),
		order.Number(),
		html.EscapeString(statusName),
		html.EscapeString(comment),
	)
	return mail.SendMail(order.CustomerEmail, subject, body)
}
