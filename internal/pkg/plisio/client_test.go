package plisio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateInvoiceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoices/new" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "store-api-key" {
			t.Errorf("unexpected api_key: %q", q.Get("api_key"))
		}
		if q.Get("source_amount") != "50.00" {
			t.Errorf("unexpected source_amount: %q", q.Get("source_amount"))
		}
		if q.Get("order_number") != "1001" {
			t.Errorf("unexpected order_number: %q", q.Get("order_number"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"txn_id":"abc123","invoice_url":"https://pay.example/abc"}}`))
	}))
	defer srv.Close()

	c := NewClient("store-api-key")
	c.APIBaseURL = srv.URL

	inv, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		OrderName:      "Order #1001",
		OrderNumber:    "1001",
		SourceAmount:   "50.00",
		SourceCurrency: "USD",
		Email:          "buyer@example.com",
		Plugin:         PluginName,
		Version:        PluginVersion,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceURL != "https://pay.example/abc" {
		t.Fatalf("unexpected invoice url: %q", inv.InvoiceURL)
	}
	if inv.TxnID != "abc123" {
		t.Fatalf("unexpected txn id: %q", inv.TxnID)
	}
}

func TestCreateInvoiceProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"error","data":{"name":"Bad Request","message":"[\"Source amount is invalid\",\"Email is invalid\"]"}}`))
	}))
	defer srv.Close()

	c := NewClient("store-api-key")
	c.APIBaseURL = srv.URL

	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{OrderNumber: "1001"})
	var invErr *InvoiceError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvoiceError, got %T: %v", err, err)
	}
	if len(invErr.Messages) != 2 || invErr.Messages[0] != "Source amount is invalid" {
		t.Fatalf("unexpected messages: %#v", invErr.Messages)
	}
}

func TestCreateInvoiceEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewClient("store-api-key")
	c.APIBaseURL = srv.URL

	_, err := c.CreateInvoice(context.Background(), InvoiceRequest{OrderNumber: "1001"})
	var invErr *InvoiceError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvoiceError for empty data, got %T: %v", err, err)
	}
}

func TestCreateInvoiceMissingAPIKey(t *testing.T) {
	c := NewClient("  ")
	if _, err := c.CreateInvoice(context.Background(), InvoiceRequest{}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
