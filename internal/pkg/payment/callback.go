package payment

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Callback is the typed form of a webhook notification after the untrusted
// key/value payload has been extracted and validated. Verification and
// status mapping only ever see these named fields, never raw request data.
type Callback struct {
	OrderNumber string `validate:"required,numeric"`
	Status      string `validate:"required"`
	Amount      float64
	Comment     string
	ExpireUTC   string
	TxURLs      string
}

// ParseCallback validates the payload fields that drive order mutations.
// Malformed payloads fail closed: the caller acknowledges them without
// touching order state.
func ParseCallback(fields map[string]string) (*Callback, error) {
	cb := &Callback{
		OrderNumber: fields["order_number"],
		Status:      fields["status"],
		Comment:     fields["comment"],
		ExpireUTC:   fields["expire_utc"],
		TxURLs:      fields["tx_urls"],
	}

	raw, ok := fields["amount"]
	if !ok || raw == "" {
		return nil, fmt.Errorf("callback payload is missing amount")
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("callback amount %q is not numeric", raw)
	}
	cb.Amount = amount

	if err := validate.Struct(cb); err != nil {
		return nil, fmt.Errorf("invalid callback payload: %w", err)
	}
	return cb, nil
}
