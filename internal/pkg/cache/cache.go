package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coincart-shop/coincart/internal/pkg/env"
	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// SetupCache initializes the connection to the Redis cache server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0, // use default DB
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// Delete removes a value from the cache by key
func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}

// invoiceURLTTL keeps a created invoice reusable while the customer can
// still return to the checkout confirmation page. Plisio invoices stay
// payable for an hour, so the cached URL must not outlive that.
const invoiceURLTTL = 55 * time.Minute

func invoiceURLKey(orderNumber string) string {
	return fmt.Sprintf("plisio:invoice:%s", orderNumber)
}

// SetInvoiceURL remembers the hosted payment page for an order so a page
// reload on the confirmation step does not create a second invoice.
func SetInvoiceURL(orderNumber, url string) error {
	return Set(invoiceURLKey(orderNumber), url, invoiceURLTTL)
}

// GetInvoiceURL returns the cached hosted payment page for an order, or
// an empty string when none is cached.
func GetInvoiceURL(orderNumber string) string {
	url, err := Get(invoiceURLKey(orderNumber))
	if err != nil {
		return ""
	}
	return url
}

// DeleteInvoiceURL drops the cached payment page, used once a callback
// settles the order and the invoice must not be reused.
func DeleteInvoiceURL(orderNumber string) error {
	return Delete(invoiceURLKey(orderNumber))
}
