package constants

// Static route constants
const (
	PublicRoute          = "/"
	CheckoutConfirmRoute = "/checkout/confirm"
	CheckoutSuccessRoute = "/checkout/success"
	CheckoutCancelRoute  = "/checkout/cancel"
	CheckoutErrorRoute   = "/checkout/error"
	// Callback path kept verbatim so existing Plisio invoices keep working
	PaymentWebhookRoute = "/callback/webhooks.payment.plisio"
)
