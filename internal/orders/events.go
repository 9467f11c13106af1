package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderPaid      = "OrderPaid"
	EventOrderShipped   = "OrderShipped"
	EventOrderCancelled = "OrderCancelled"
	EventOrderDelivered = "OrderDelivered"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID       string        `json:"order_id"`
	UserID        string        `json:"user_id"`
	Items         []Item        `json:"items"`
	TotalPaise    int64         `json:"total_paise"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	AppliedCoupon string        `json:"applied_coupon,omitempty"`
}

type OrderPaidPayload struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	PaymentID string `json:"payment_id"`
}

type OrderShippedPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

type OrderCancelledPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

type OrderDeliveredPayload struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}
