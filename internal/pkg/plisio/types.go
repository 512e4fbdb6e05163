package plisio

// InvoiceRequest carries the parameters for creating a hosted invoice.
// Field names mirror the provider's API parameters.
type InvoiceRequest struct {
	OrderName      string
	OrderNumber    string
	SourceAmount   string
	SourceCurrency string
	CallbackURL    string
	CancelURL      string
	SuccessURL     string
	Email          string
	Plugin         string
	Version        string
}

// Invoice is the relevant part of a successful invoice-creation response.
type Invoice struct {
	TxnID      string `json:"txn_id"`
	InvoiceURL string `json:"invoice_url"`
}
