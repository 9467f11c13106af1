package redisx

import "time"

const (
	// Cached fulfillment status, keyed by owner so a hit can only serve
	// them: order_status:{user_id}:{order_id} -> status
	KeyOrderStatus = "order_status:%s:%s"

	// Gateway callbacks already applied: payment:seen:{gateway_payment_id}
	KeyPaymentSeen = "payment:seen:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLPaymentSeen = 48 * time.Hour
	TTLDedup       = 48 * time.Hour
)
