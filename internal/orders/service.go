package orders

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/shuddhindia/storefront-api/internal/cart"
	"github.com/shuddhindia/storefront-api/internal/coupon"
	kafkax "github.com/shuddhindia/storefront-api/internal/kafka"
)

// CartSource reads a user's cart resolved against live catalog prices.
type CartSource interface {
	Get(ctx context.Context, userID string) (cart.View, error)
}

// CouponValidator runs the full applicability check without consuming a use.
type CouponValidator interface {
	Validate(ctx context.Context, code, userID string) (coupon.Coupon, error)
}

// Store persists orders. CreatePlaced must atomically write the order,
// consume the coupon and clear the cart; SetStatus and MarkDelivered are
// compare-and-set on the current status.
type Store interface {
	CreatePlaced(ctx context.Context, o *Order, now time.Time) error
	Get(ctx context.Context, id string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context, limit int) ([]Order, error)
	SetStatus(ctx context.Context, id string, from, to Status) error
	MarkDelivered(ctx context.Context, id string, from Status, at time.Time) error
	MarkPaid(ctx context.Context, id, paymentID string, at time.Time) (Order, error)
	UpdateTracking(ctx context.Context, id string, t Tracking) (Order, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store    Store
	Carts    CartSource
	Coupons  CouponValidator
	Producer Publisher // optional
	Name     string

	Now func() time.Time // optional, defaults to time.Now
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Place runs the checkout: read cart, check the coupon, fix the total, and
// persist order + coupon redemption + cart delete in one transaction.
func (s *Service) Place(ctx context.Context, userID string, addr Address, method PaymentMethod, couponCode string) (Order, error) {
	if method == "" {
		method = PaymentCOD
	}
	if !method.Valid() {
		return Order{}, ErrInvalidPayment
	}
	if !addr.Complete() {
		return Order{}, ErrInvalidAddress
	}

	view, err := s.Carts.Get(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(view.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	discount := 0
	applied := ""
	if couponCode != "" {
		c, err := s.Coupons.Validate(ctx, coupon.Normalize(couponCode), userID)
		if err != nil {
			return Order{}, err
		}
		discount = c.DiscountPercent
		applied = c.Code
	}

	items := make([]Item, 0, len(view.Items))
	for _, l := range view.Items {
		items = append(items, Item{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	now := s.now()
	o := Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		TotalPaise:      ApplyDiscount(view.SubtotalPaise, discount),
		AppliedCoupon:   applied,
		DiscountPercent: discount,
		PaymentMethod:   method,
		IsPaid:          method == PaymentOnline,
		Status:          StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if o.IsPaid {
		o.PaidAt = &now
	}

	if err := s.Store.CreatePlaced(ctx, &o, now); err != nil {
		return Order{}, err
	}

	s.publish(ctx, EventOrderPlaced, o.ID, OrderPlacedPayload{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Items:         o.Items,
		TotalPaise:    o.TotalPaise,
		PaymentMethod: o.PaymentMethod,
		AppliedCoupon: o.AppliedCoupon,
	})
	return o, nil
}

// Get enforces the own-order check: customers see their orders, admins any.
func (s *Service) Get(ctx context.Context, orderID, requesterID string, isAdmin bool) (Order, error) {
	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && o.UserID != requesterID {
		return Order{}, ErrForbidden
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, limit int) ([]Order, error) {
	return s.Store.ListAll(ctx, limit)
}

func (s *Service) Cancel(ctx context.Context, orderID, requesterID string, isAdmin bool) (Order, error) {
	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && o.UserID != requesterID {
		return Order{}, ErrForbidden
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return Order{}, ErrInvalidTransition
	}
	if err := s.Store.SetStatus(ctx, orderID, o.Status, StatusCancelled); err != nil {
		return Order{}, err
	}
	o.Status = StatusCancelled

	s.publish(ctx, EventOrderCancelled, o.ID, OrderCancelledPayload{OrderID: o.ID, UserID: o.UserID})
	return o, nil
}

func (s *Service) MarkShipped(ctx context.Context, orderID string) (Order, error) {
	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, StatusShipped) {
		return Order{}, ErrInvalidTransition
	}
	if err := s.Store.SetStatus(ctx, orderID, o.Status, StatusShipped); err != nil {
		return Order{}, err
	}
	o.Status = StatusShipped

	s.publish(ctx, EventOrderShipped, o.ID, OrderShippedPayload{OrderID: o.ID, UserID: o.UserID})
	return o, nil
}

func (s *Service) MarkDelivered(ctx context.Context, orderID string) (Order, error) {
	o, err := s.Store.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, StatusDelivered) {
		return Order{}, ErrInvalidTransition
	}
	now := s.now()
	if err := s.Store.MarkDelivered(ctx, orderID, o.Status, now); err != nil {
		return Order{}, err
	}
	o.Status = StatusDelivered
	o.IsDelivered = true
	o.DeliveredAt = &now

	s.publish(ctx, EventOrderDelivered, o.ID, OrderDeliveredPayload{OrderID: o.ID, UserID: o.UserID})
	return o, nil
}

func (s *Service) UpdateTracking(ctx context.Context, orderID string, t Tracking) (Order, error) {
	return s.Store.UpdateTracking(ctx, orderID, t)
}

// MarkPaid records a verified gateway payment against the order.
func (s *Service) MarkPaid(ctx context.Context, orderID, paymentID string) (Order, error) {
	o, err := s.Store.MarkPaid(ctx, orderID, paymentID, s.now())
	if err != nil {
		return Order{}, err
	}
	s.publish(ctx, EventOrderPaid, o.ID, OrderPaidPayload{OrderID: o.ID, UserID: o.UserID, PaymentID: paymentID})
	return o, nil
}

func (s *Service) publish(ctx context.Context, eventType, orderID string, payload any) {
	if s.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    s.now().UTC(),
		Producer:      s.Name,
		TraceID:       middleware.GetReqID(ctx),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	s.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
