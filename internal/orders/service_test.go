package orders

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuddhindia/storefront-api/internal/cart"
	"github.com/shuddhindia/storefront-api/internal/coupon"
)

type fakeCarts struct {
	views map[string]cart.View
}

func (f *fakeCarts) Get(_ context.Context, userID string) (cart.View, error) {
	return f.views[userID], nil
}

type fakeCoupons struct {
	coupons map[string]coupon.Coupon
	err     error
}

func (f *fakeCoupons) Validate(_ context.Context, code, _ string) (coupon.Coupon, error) {
	if f.err != nil {
		return coupon.Coupon{}, f.err
	}
	c, ok := f.coupons[code]
	if !ok {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return c, nil
}

type fakeStore struct {
	orders  map[string]Order
	created []Order
}

func newFakeStore() *fakeStore { return &fakeStore{orders: map[string]Order{}} }

func (f *fakeStore) CreatePlaced(_ context.Context, o *Order, _ time.Time) error {
	f.orders[o.ID] = *o
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context, _ int) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id string, from, to Status) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return ErrInvalidTransition
	}
	o.Status = to
	f.orders[id] = o
	return nil
}

func (f *fakeStore) MarkDelivered(_ context.Context, id string, from Status, at time.Time) error {
	if err := f.SetStatus(nil, id, from, StatusDelivered); err != nil {
		return err
	}
	o := f.orders[id]
	o.IsDelivered = true
	o.DeliveredAt = &at
	f.orders[id] = o
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id, paymentID string, at time.Time) (Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o.IsPaid = true
	o.PaidAt = &at
	o.PaymentID = paymentID
	f.orders[id] = o
	return o, nil
}

func (f *fakeStore) UpdateTracking(_ context.Context, id string, t Tracking) (Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if t.Courier != nil {
		o.Courier = *t.Courier
	}
	if t.TrackingID != nil {
		o.TrackingID = *t.TrackingID
	}
	if t.EstimatedDelivery != nil {
		o.EstimatedDelivery = t.EstimatedDelivery
	}
	f.orders[id] = o
	return o, nil
}

type capturedEvent struct {
	key     []byte
	value   []byte
	headers []kafkago.Header
}

type fakePublisher struct {
	events []capturedEvent
}

func (f *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	f.events = append(f.events, capturedEvent{key: key, value: value, headers: headers})
}

var testAddr = Address{
	Name:    "Asha Rao",
	Phone:   "9800000000",
	Address: "12 MG Road",
	City:    "Mysuru",
	State:   "Karnataka",
	Pincode: "570001",
}

func testService(store *fakeStore, view cart.View, coupons *fakeCoupons) (*Service, *fakePublisher) {
	pub := &fakePublisher{}
	if coupons == nil {
		coupons = &fakeCoupons{}
	}
	svc := &Service{
		Store:    store,
		Carts:    &fakeCarts{views: map[string]cart.View{"u-1": view}},
		Coupons:  coupons,
		Producer: pub,
		Name:     "storefront-api-test",
		Now:      func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) },
	}
	return svc, pub
}

func twoLineCart() cart.View {
	return cart.NewView([]cart.ViewLine{
		{ProductID: "p1", PricePaise: 10000, Quantity: 2},
		{ProductID: "p2", PricePaise: 5000, Quantity: 1},
	})
}

func TestPlaceCOD(t *testing.T) {
	store := newFakeStore()
	svc, pub := testService(store, twoLineCart(), nil)

	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, int64(25000), o.TotalPaise)
	assert.False(t, o.IsPaid)
	assert.Nil(t, o.PaidAt)
	assert.Len(t, o.Items, 2)
	require.Len(t, store.created, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, []byte(o.ID), pub.events[0].key)
}

func TestPlaceOnlineIsPaid(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)

	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentOnline, "")
	require.NoError(t, err)
	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)
}

func TestPlaceDefaultsToCOD(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)

	o, err := svc.Place(context.Background(), "u-1", testAddr, "", "")
	require.NoError(t, err)
	assert.Equal(t, PaymentCOD, o.PaymentMethod)
}

func TestPlaceEmptyCart(t *testing.T) {
	store := newFakeStore()
	svc, pub := testService(store, cart.View{}, nil)

	_, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.created)
	assert.Empty(t, pub.events)
}

func TestPlaceIncompleteAddress(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)

	addr := testAddr
	addr.Pincode = ""
	_, err := svc.Place(context.Background(), "u-1", addr, PaymentCOD, "")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestPlaceUnknownPaymentMethod(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)

	_, err := svc.Place(context.Background(), "u-1", testAddr, "UPI", "")
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestPlaceWithCoupon(t *testing.T) {
	store := newFakeStore()
	coupons := &fakeCoupons{coupons: map[string]coupon.Coupon{
		"DIWALI10": {Code: "DIWALI10", DiscountPercent: 10},
	}}
	svc, _ := testService(store, twoLineCart(), coupons)

	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "diwali10")
	require.NoError(t, err)
	assert.Equal(t, int64(22500), o.TotalPaise)
	assert.Equal(t, "DIWALI10", o.AppliedCoupon)
	assert.Equal(t, 10, o.DiscountPercent)
}

func TestPlaceCouponRejectionAbortsOrder(t *testing.T) {
	store := newFakeStore()
	coupons := &fakeCoupons{err: coupon.ErrExpired}
	svc, pub := testService(store, twoLineCart(), coupons)

	_, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "OLD10")
	assert.ErrorIs(t, err, coupon.ErrExpired)
	assert.Empty(t, store.created)
	assert.Empty(t, pub.events)
}

func TestGetOwnership(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), o.ID, "u-2", false)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(context.Background(), o.ID, "u-2", true)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.Get(context.Background(), "missing", "u-1", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	store := newFakeStore()
	svc, pub := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	t.Run("stranger may not cancel", func(t *testing.T) {
		_, err := svc.Cancel(context.Background(), o.ID, "u-2", false)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner cancels", func(t *testing.T) {
		got, err := svc.Cancel(context.Background(), o.ID, "u-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		_, err := svc.Cancel(context.Background(), o.ID, "u-1", false)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	// place + cancel
	assert.Len(t, pub.events, 2)
}

func TestCancelledOrderCannotBeDelivered(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), o.ID, "u-1", false)
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), o.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// A freshly placed order (Confirmed) can be delivered straight away; the
// shipping step is optional.
func TestMarkDeliveredFromPlacedOrder(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, o.Status)

	got, err := svc.MarkDelivered(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)
	assert.True(t, got.IsDelivered)
	require.NotNil(t, got.DeliveredAt)
}

func TestMarkShippedThenDelivered(t *testing.T) {
	store := newFakeStore()
	svc, pub := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	shipped, err := svc.MarkShipped(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, shipped.Status)

	_, err = svc.MarkShipped(context.Background(), o.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := svc.MarkDelivered(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)

	_, err = svc.MarkShipped(context.Background(), o.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// place + ship + deliver
	assert.Len(t, pub.events, 3)
}

func TestMarkPaid(t *testing.T) {
	store := newFakeStore()
	svc, pub := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentOnline, "")
	require.NoError(t, err)

	got, err := svc.MarkPaid(context.Background(), o.ID, "pay_ABC")
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, "pay_ABC", got.PaymentID)
	assert.Len(t, pub.events, 2)
}

func TestUpdateTracking(t *testing.T) {
	store := newFakeStore()
	svc, _ := testService(store, twoLineCart(), nil)
	o, err := svc.Place(context.Background(), "u-1", testAddr, PaymentCOD, "")
	require.NoError(t, err)

	courier := "Delhivery"
	got, err := svc.UpdateTracking(context.Background(), o.ID, Tracking{Courier: &courier})
	require.NoError(t, err)
	assert.Equal(t, "Delhivery", got.Courier)
	assert.Empty(t, got.TrackingID)
}
