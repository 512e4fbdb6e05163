package counter

import (
	"context"
	"strconv"

	"github.com/coincart-shop/coincart/internal/pkg/cache"
)

const webhookDeliveriesKey = "payment:counters:webhooks"

// Hash fields per delivery outcome.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// AddWebhookDelivery increments the pending delivery counter for an outcome in Redis
func AddWebhookDelivery(outcome string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, webhookDeliveriesKey, outcome, 1).Err()
}

// WebhookDeliveryStats returns the accumulated delivery counts per outcome.
// Counters live in Redis only; a cache flush resets them.
func WebhookDeliveryStats() (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, webhookDeliveriesKey).Result()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(data))
	for outcome, raw := range data {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		stats[outcome] = n
	}
	return stats, nil
}
