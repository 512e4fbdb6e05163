package plisio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBaseURL = "https://plisio.net/api/v1"

// PluginName and PluginVersion identify this integration to the provider.
const (
	PluginName    = "CoinCart"
	PluginVersion = "2.0.0"
)

// Client talks to the provider's invoice API.
type Client struct {
	APIKey     string
	APIBaseURL string

	HTTPClient *http.Client
}

// NewClient creates a client for the given store API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     strings.TrimSpace(apiKey),
		APIBaseURL: defaultAPIBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InvoiceError is returned when the provider rejects an invoice request.
// The provider reports data.message as a JSON-encoded array of error strings.
type InvoiceError struct {
	Messages []string
}

func (e *InvoiceError) Error() string {
	if len(e.Messages) == 0 {
		return "plisio: invoice creation failed"
	}
	return "plisio: " + strings.Join(e.Messages, ", ")
}

// CreateInvoice creates a hosted invoice and returns its payment URL. There
// is deliberately no retry: a checkout confirmation makes exactly one
// attempt, and failures surface to the customer.
func (c *Client) CreateInvoice(ctx context.Context, in InvoiceRequest) (*Invoice, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("plisio api key is not configured")
	}

	u, err := url.Parse(strings.TrimRight(c.APIBaseURL, "/") + "/invoices/new")
	if err != nil {
		return nil, fmt.Errorf("invalid plisio api base url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("order_name", in.OrderName)
	q.Set("order_number", in.OrderNumber)
	q.Set("source_amount", in.SourceAmount)
	q.Set("source_currency", in.SourceCurrency)
	q.Set("callback_url", in.CallbackURL)
	q.Set("cancel_url", in.CancelURL)
	q.Set("success_url", in.SuccessURL)
	q.Set("email", in.Email)
	q.Set("plugin", in.Plugin)
	q.Set("version", in.Version)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("plisio invoice response malformed: status=%d body=%s", resp.StatusCode, string(body))
	}
	if raw.Status == "error" || len(raw.Data) == 0 {
		return nil, parseInvoiceError(raw.Data)
	}

	var inv Invoice
	if err := json.Unmarshal(raw.Data, &inv); err != nil {
		return nil, err
	}
	if strings.TrimSpace(inv.InvoiceURL) == "" {
		return nil, &InvoiceError{Messages: []string{"invoice response missing invoice_url"}}
	}
	return &inv, nil
}

func parseInvoiceError(data json.RawMessage) error {
	var payload struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &payload)
	}

	var messages []string
	if strings.TrimSpace(payload.Message) != "" {
		if err := json.Unmarshal([]byte(payload.Message), &messages); err != nil {
			messages = []string{payload.Message}
		}
	}
	return &InvoiceError{Messages: messages}
}
