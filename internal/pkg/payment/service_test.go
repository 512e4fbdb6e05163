package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coincart-shop/coincart/app/models"
	"github.com/coincart-shop/coincart/internal/pkg/plisio"
)

// signFields reproduces the provider's reference signing: fields minus
// verify_hash, sorted by key, PHP-serialize framing, HMAC-SHA1 hex.
func signFields(fields map[string]string, apiKey string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "verify_hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "a:%d:{", len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, `s:%d:"%s";s:%d:"%s";`, len(k), k, len(fields[k]), fields[k])
	}
	b.WriteByte('}')

	mac := hmac.New(sha1.New, []byte(apiKey))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

type statusChange struct {
	orderID  uint
	statusID uint
	comment  string
	notified bool
}

type fakeOrderRepo struct {
	orders        map[string]*models.Order
	statusNames   map[uint]string
	statusChanges []statusChange
}

func (f *fakeOrderRepo) Create(order *models.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	return f.GetByNumber(fmt.Sprintf("%d", id))
}
func (f *fakeOrderRepo) GetByNumber(number string) (*models.Order, error) {
	if o, ok := f.orders[number]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) GetByPublicToken(token string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) SetStatus(orderID, statusID uint, comment string, customerNotified bool) error {
	f.statusChanges = append(f.statusChanges, statusChange{orderID, statusID, comment, customerNotified})
	return nil
}
func (f *fakeOrderRepo) GetStatusName(statusID uint) (string, error) {
	if name, ok := f.statusNames[statusID]; ok {
		return name, nil
	}
	return "", gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) Update(order *models.Order) error { return nil }

type fakeTxnRepo struct {
	byOrder map[uint]*models.PaymentTransaction
	upserts int
}

func (f *fakeTxnRepo) UpsertByOrder(txn *models.PaymentTransaction) error {
	if f.byOrder == nil {
		f.byOrder = make(map[uint]*models.PaymentTransaction)
	}
	f.upserts++
	copied := *txn
	f.byOrder[txn.OrderID] = &copied
	return nil
}
func (f *fakeTxnRepo) GetByOrderID(orderID uint) (*models.PaymentTransaction, error) {
	if txn, ok := f.byOrder[orderID]; ok {
		return txn, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEventRepo struct {
	events    []*models.PaymentWebhookEvent
	processed map[uint]string
}

func (f *fakeEventRepo) RecordIfNew(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	for _, e := range f.events {
		if e.Provider == event.Provider && e.EventHash == event.EventHash {
			return false, e, nil
		}
	}
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, event)
	return true, event, nil
}
func (f *fakeEventRepo) MarkProcessed(id uint, processingError string) error {
	if f.processed == nil {
		f.processed = make(map[uint]string)
	}
	f.processed[id] = processingError
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) NotifyStatusChange(order *models.Order, statusName, comment string) error {
	f.sent = append(f.sent, fmt.Sprintf("%s:%s:%s", order.Number(), statusName, comment))
	return f.err
}

func testSettings() *models.PaymentSettings {
	return &models.PaymentSettings{
		Enabled:           true,
		APIKey:            "store-api-key",
		PaidStatusID:      10,
		PendingStatusID:   11,
		ExpiredStatusID:   12,
		CancelledStatusID: 13,
	}
}

func newTestService() (*Service, *fakeOrderRepo, *fakeTxnRepo, *fakeEventRepo, *fakeNotifier) {
	orders := &fakeOrderRepo{
		orders: map[string]*models.Order{
			"1001": {ID: 1001, CustomerName: "Ada", CustomerEmail: "ada@example.com", Currency: "USD", TotalIncTax: 49.999},
		},
		statusNames: map[uint]string{10: "Plisio [Paid]", 11: "Plisio [Pending]"},
	}
	txns := &fakeTxnRepo{}
	events := &fakeEventRepo{}
	notifier := &fakeNotifier{}
	return NewService(orders, txns, events, notifier), orders, txns, events, notifier
}

func validCallbackFields(apiKey string) map[string]string {
	fields := map[string]string{
		"order_number": "1001",
		"status":       "completed",
		"amount":       "0.0025",
		"currency":     "BTC",
		"comment":      "Payment comment",
	}
	fields["verify_hash"] = signFields(fields, apiKey)
	return fields
}

func TestProcessCallbackCompleted(t *testing.T) {
	svc, orders, txns, events, notifier := newTestService()
	settings := testSettings()

	res := svc.ProcessCallback(context.Background(), settings, validCallbackFields(settings.APIKey))

	assert.True(t, res.Accepted)
	assert.Equal(t, CallbackAckBody, res.Body)

	require.Len(t, orders.statusChanges, 1)
	assert.Equal(t, uint(1001), orders.statusChanges[0].orderID)
	assert.Equal(t, settings.PaidStatusID, orders.statusChanges[0].statusID)
	assert.Equal(t, "Payment complete", orders.statusChanges[0].comment)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "1001:Plisio [Paid]:Payment complete", notifier.sent[0])

	txn, err := txns.GetByOrderID(1001)
	require.NoError(t, err)
	require.NotNil(t, txn.StatusCode)
	assert.Equal(t, settings.PaidStatusID, *txn.StatusCode)
	assert.Equal(t, "completed", txn.Status)
	assert.InDelta(t, 0.0025, txn.Amount, 1e-12)
	assert.Equal(t, "Payment comment", txn.Comments)

	require.Len(t, events.events, 1)
	assert.True(t, events.events[0].SignatureValid)
	assert.Equal(t, "", events.processed[events.events[0].ID])
}

func TestProcessCallbackTamperedHash(t *testing.T) {
	svc, orders, txns, events, _ := newTestService()
	settings := testSettings()

	fields := validCallbackFields(settings.APIKey)
	fields["amount"] = "9999.00" // signed fields no longer match the hash

	res := svc.ProcessCallback(context.Background(), settings, fields)

	assert.False(t, res.Accepted)
	assert.Equal(t, CallbackFailBody, res.Body)
	assert.Empty(t, orders.statusChanges)
	assert.Equal(t, 0, txns.upserts)

	require.Len(t, events.events, 1)
	assert.False(t, events.events[0].SignatureValid)
}

func TestProcessCallbackMissingHash(t *testing.T) {
	svc, orders, txns, _, _ := newTestService()
	settings := testSettings()

	res := svc.ProcessCallback(context.Background(), settings, map[string]string{
		"order_number": "1001",
		"status":       "completed",
		"amount":       "1.00",
	})

	assert.False(t, res.Accepted)
	assert.Equal(t, CallbackFailBody, res.Body)
	assert.Empty(t, orders.statusChanges)
	assert.Equal(t, 0, txns.upserts)
}

func TestProcessCallbackIdempotentRedelivery(t *testing.T) {
	svc, _, txns, events, _ := newTestService()
	settings := testSettings()
	fields := validCallbackFields(settings.APIKey)

	first := svc.ProcessCallback(context.Background(), settings, fields)
	second := svc.ProcessCallback(context.Background(), settings, fields)

	assert.True(t, first.Accepted)
	assert.True(t, second.Accepted)

	// Exactly one transaction row per order, reflecting the last delivery.
	assert.Len(t, txns.byOrder, 1)
	assert.Equal(t, 2, txns.upserts)
	// Byte-identical re-delivery is deduplicated in the audit log.
	assert.Len(t, events.events, 1)
}

func TestProcessCallbackUnmappedStatus(t *testing.T) {
	svc, orders, txns, _, notifier := newTestService()
	settings := testSettings()

	fields := map[string]string{
		"order_number": "1001",
		"status":       "internal_error",
		"amount":       "0.0025",
	}
	fields["verify_hash"] = signFields(fields, settings.APIKey)

	res := svc.ProcessCallback(context.Background(), settings, fields)

	assert.True(t, res.Accepted)
	assert.Equal(t, CallbackAckBody, res.Body)
	assert.Empty(t, orders.statusChanges, "unmapped status must not advance the order")
	assert.Empty(t, notifier.sent)

	txn, err := txns.GetByOrderID(1001)
	require.NoError(t, err)
	assert.Nil(t, txn.StatusCode)
	assert.Equal(t, "internal_error", txn.Status)
}

func TestProcessCallbackMalformedAmountFailsClosed(t *testing.T) {
	svc, orders, txns, events, _ := newTestService()
	settings := testSettings()

	fields := map[string]string{
		"order_number": "1001",
		"status":       "completed",
		"amount":       "not-a-number",
	}
	fields["verify_hash"] = signFields(fields, settings.APIKey)

	res := svc.ProcessCallback(context.Background(), settings, fields)

	assert.True(t, res.Accepted)
	assert.Equal(t, CallbackAckBody, res.Body)
	assert.Empty(t, orders.statusChanges)
	assert.Equal(t, 0, txns.upserts)

	require.Len(t, events.events, 1)
	assert.NotEmpty(t, events.processed[events.events[0].ID])
}

func TestProcessCallbackUnknownOrder(t *testing.T) {
	svc, orders, txns, _, _ := newTestService()
	settings := testSettings()

	fields := map[string]string{
		"order_number": "4242",
		"status":       "completed",
		"amount":       "1.00",
	}
	fields["verify_hash"] = signFields(fields, settings.APIKey)

	res := svc.ProcessCallback(context.Background(), settings, fields)

	assert.True(t, res.Accepted)
	assert.Equal(t, CallbackAckBody, res.Body)
	assert.Empty(t, orders.statusChanges)
	assert.Equal(t, 0, txns.upserts)
}

func TestProcessCallbackNotifierErrorDoesNotFailDelivery(t *testing.T) {
	svc, _, txns, _, notifier := newTestService()
	notifier.err = errors.New("smtp down")
	settings := testSettings()

	res := svc.ProcessCallback(context.Background(), settings, validCallbackFields(settings.APIKey))

	assert.True(t, res.Accepted)
	assert.Equal(t, 1, txns.upserts)
}

type fakeInvoiceCreator struct {
	got     plisio.InvoiceRequest
	invoice *plisio.Invoice
	err     error
}

func (f *fakeInvoiceCreator) CreateInvoice(ctx context.Context, in plisio.InvoiceRequest) (*plisio.Invoice, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.invoice, nil
}

func TestBuildInvoiceRequest(t *testing.T) {
	order := &models.Order{
		ID:            1001,
		CustomerEmail: "ada@example.com",
		Currency:      "USD",
		TotalIncTax:   49.999,
	}
	urls := CheckoutURLs{
		Callback: "https://shop.example/callback/webhooks.payment.plisio?action=processWebhook",
		Cancel:   "https://shop.example/checkout/cancel",
		Success:  "https://shop.example/checkout/success",
	}

	req := BuildInvoiceRequest(order, urls)

	assert.Equal(t, "Order #1001", req.OrderName)
	assert.Equal(t, "1001", req.OrderNumber)
	assert.Equal(t, "50.00", req.SourceAmount)
	assert.Equal(t, "USD", req.SourceCurrency)
	assert.Equal(t, urls.Callback, req.CallbackURL)
	assert.Equal(t, plisio.PluginName, req.Plugin)
	assert.Equal(t, plisio.PluginVersion, req.Version)
}

func TestBeginCheckout(t *testing.T) {
	svc, orders, _, _, _ := newTestService()
	order := orders.orders["1001"]

	client := &fakeInvoiceCreator{invoice: &plisio.Invoice{TxnID: "abc", InvoiceURL: "https://pay.example/abc"}}
	url, err := svc.BeginCheckout(context.Background(), client, order, CheckoutURLs{})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", url)
	assert.Equal(t, "50.00", client.got.SourceAmount)

	failing := &fakeInvoiceCreator{err: &plisio.InvoiceError{Messages: []string{"Source amount is invalid"}}}
	_, err = svc.BeginCheckout(context.Background(), failing, order, CheckoutURLs{})
	var invErr *plisio.InvoiceError
	require.ErrorAs(t, err, &invErr)
}
