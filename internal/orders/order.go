package orders

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrForbidden         = errors.New("not authorized for this order")
	ErrInvalidAddress    = errors.New("shipping address is incomplete")
	ErrInvalidPayment    = errors.New("unknown payment method")
	ErrInvalidTransition = errors.New("order state does not allow this")
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "Online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

type Address struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
	AlternatePhone string `json:"alternate_phone,omitempty"`
	Nearby         string `json:"nearby,omitempty"`
}

func (a Address) Complete() bool {
	return a.Name != "" && a.Phone != "" && a.Address != "" &&
		a.City != "" && a.State != "" && a.Pincode != ""
}

// Item is a snapshot of one cart line. Unit prices are intentionally not
// snapshotted; the stored total is fixed at placement.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	Items             []Item        `json:"items"`
	ShippingAddress   Address       `json:"shipping_address"`
	TotalPaise        int64         `json:"total_paise"`
	AppliedCoupon     string        `json:"applied_coupon,omitempty"`
	DiscountPercent   int           `json:"discount_percent"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	IsPaid            bool          `json:"is_paid"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	PaymentID         string        `json:"payment_id,omitempty"`
	GatewayOrderID    string        `json:"gateway_order_id,omitempty"`
	IsDelivered       bool          `json:"is_delivered"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	Status            Status        `json:"status"`
	Courier           string        `json:"courier,omitempty"`
	TrackingID        string        `json:"tracking_id,omitempty"`
	EstimatedDelivery *time.Time    `json:"estimated_delivery,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Tracking carries the optional fields an administrator can set after
// dispatch. Nil fields are left unchanged.
type Tracking struct {
	Courier           *string    `json:"courier"`
	TrackingID        *string    `json:"tracking_id"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}
