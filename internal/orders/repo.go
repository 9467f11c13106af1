package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuddhindia/storefront-api/internal/coupon"
)

type Repo struct {
	DB      *pgxpool.Pool
	Coupons *coupon.Repo
}

const orderCols = `
	id, user_id, total_paise, applied_coupon, discount_percent, payment_method,
	is_paid, paid_at, payment_id, gateway_order_id, is_delivered, delivered_at,
	status, courier, tracking_id, estimated_delivery, notes,
	ship_name, ship_phone, ship_address, ship_city, ship_state, ship_pincode,
	ship_alt_phone, ship_nearby, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalPaise, &o.AppliedCoupon, &o.DiscountPercent,
		&o.PaymentMethod, &o.IsPaid, &o.PaidAt, &o.PaymentID, &o.GatewayOrderID,
		&o.IsDelivered, &o.DeliveredAt, &o.Status, &o.Courier, &o.TrackingID,
		&o.EstimatedDelivery, &o.Notes,
		&o.ShippingAddress.Name, &o.ShippingAddress.Phone, &o.ShippingAddress.Address,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.Pincode,
		&o.ShippingAddress.AlternatePhone, &o.ShippingAddress.Nearby,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// CreatePlaced writes the order snapshot, consumes the coupon and deletes
// the cart in one transaction. A crash leaves either everything or nothing.
func (r *Repo) CreatePlaced(ctx context.Context, o *Order, now time.Time) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if o.AppliedCoupon != "" {
		if _, err := r.Coupons.Redeem(ctx, tx, o.AppliedCoupon, o.UserID, now); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, total_paise, applied_coupon, discount_percent,
			payment_method, is_paid, paid_at, status,
			ship_name, ship_phone, ship_address, ship_city, ship_state,
			ship_pincode, ship_alt_phone, ship_nearby, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$18)`,
		o.ID, o.UserID, o.TotalPaise, o.AppliedCoupon, o.DiscountPercent,
		o.PaymentMethod, o.IsPaid, o.PaidAt, o.Status,
		o.ShippingAddress.Name, o.ShippingAddress.Phone, o.ShippingAddress.Address,
		o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.Pincode,
		o.ShippingAddress.AlternatePhone, o.ShippingAddress.Nearby, now)
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)`, o.ID, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, o.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *Repo) ListAll(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *Repo) collect(ctx context.Context, rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	out := make([]Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *Repo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	byOrder := make(map[string][]Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, quantity FROM order_items WHERE order_id = ANY($1)`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		byOrder[orderID] = append(byOrder[orderID], it)
	}
	return byOrder, rows.Err()
}

// SetStatus is a compare-and-set on the current status, so a raced second
// transition fails instead of silently overwriting.
func (r *Repo) SetStatus(ctx context.Context, id string, from, to Status) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET status=$3, updated_at=now() WHERE id=$1 AND status=$2`,
		id, from, to)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *Repo) MarkDelivered(ctx context.Context, id string, from Status, at time.Time) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET is_delivered=TRUE, delivered_at=$3, status=$4, updated_at=now()
		WHERE id=$1 AND status=$2`,
		id, from, at, StatusDelivered)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *Repo) MarkPaid(ctx context.Context, id, paymentID string, at time.Time) (Order, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET payment_id=$2, is_paid=TRUE, paid_at=$3, updated_at=now()
		WHERE id=$1`, id, paymentID, at)
	if err != nil {
		return Order{}, err
	}
	if ct.RowsAffected() == 0 {
		return Order{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) UpdateTracking(ctx context.Context, id string, t Tracking) (Order, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET courier = COALESCE($2, courier),
		    tracking_id = COALESCE($3, tracking_id),
		    estimated_delivery = COALESCE($4, estimated_delivery),
		    updated_at = now()
		WHERE id=$1`,
		id, t.Courier, t.TrackingID, t.EstimatedDelivery)
	if err != nil {
		return Order{}, err
	}
	if ct.RowsAffected() == 0 {
		return Order{}, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInvalidTransition
}

type Stats struct {
	TotalOrders  int   `json:"total_orders"`
	RevenuePaise int64 `json:"revenue_paise"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.DB.QueryRow(ctx, `
		SELECT COUNT(*)::int, COALESCE(SUM(total_paise), 0)::bigint FROM orders`,
	).Scan(&s.TotalOrders, &s.RevenuePaise)
	return s, err
}
