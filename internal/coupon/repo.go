package coupon

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, code string, discountPercent int, expiresAt time.Time, usageLimit int) (Coupon, error) {
	code = Normalize(code)
	if code == "" || discountPercent < 1 || discountPercent > 100 {
		return Coupon{}, ErrInvalidCode
	}
	if usageLimit < 1 {
		usageLimit = 1
	}
	c := Coupon{
		ID:              uuid.NewString(),
		Code:            code,
		DiscountPercent: discountPercent,
		ExpiresAt:       expiresAt,
		UsageLimit:      usageLimit,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO coupons (id, code, discount_percent, expires_at, usage_limit)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
		RETURNING created_at`,
		c.ID, c.Code, c.DiscountPercent, c.ExpiresAt, c.UsageLimit,
	).Scan(&c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Coupon{}, ErrDuplicate
	}
	return c, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM coupons WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Coupon, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.id, c.code, c.discount_percent, c.expires_at, c.usage_limit,
		       COUNT(cr.user_id)::int, c.created_at
		FROM coupons c LEFT JOIN coupon_redemptions cr ON cr.coupon_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.ExpiresAt,
			&c.UsageLimit, &c.UsedCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Validate runs the full applicability check for a user without consuming a
// use. Backs the checkout preview endpoint.
func (r *Repo) Validate(ctx context.Context, code, userID string) (Coupon, error) {
	var (
		c    Coupon
		used bool
	)
	err := r.DB.QueryRow(ctx, `
		SELECT c.id, c.code, c.discount_percent, c.expires_at, c.usage_limit, c.created_at,
		       COUNT(cr.user_id)::int,
		       bool_or(cr.user_id = $2) IS TRUE
		FROM coupons c LEFT JOIN coupon_redemptions cr ON cr.coupon_id = c.id
		WHERE c.code = $1
		GROUP BY c.id`, Normalize(code), userID,
	).Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.ExpiresAt, &c.UsageLimit,
		&c.CreatedAt, &c.UsedCount, &used)
	if errors.Is(err, pgx.ErrNoRows) {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	if err := Check(c, used, c.UsedCount, time.Now()); err != nil {
		return Coupon{}, err
	}
	return c, nil
}

// Redeem re-runs the applicability check under a row lock and records the
// redemption, all inside the caller's transaction. Two concurrent
// redemptions of a coupon's last use cannot both pass.
func (r *Repo) Redeem(ctx context.Context, tx pgx.Tx, code, userID string, now time.Time) (Coupon, error) {
	var c Coupon
	err := tx.QueryRow(ctx, `
		SELECT id, code, discount_percent, expires_at, usage_limit, created_at
		FROM coupons WHERE code=$1
		FOR UPDATE`, Normalize(code),
	).Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.ExpiresAt, &c.UsageLimit, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}

	var used bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM coupon_redemptions WHERE coupon_id=$1 AND user_id=$2)`,
		c.ID, userID).Scan(&used); err != nil {
		return Coupon{}, err
	}
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*)::int FROM coupon_redemptions WHERE coupon_id=$1`, c.ID,
	).Scan(&c.UsedCount); err != nil {
		return Coupon{}, err
	}
	if err := Check(c, used, c.UsedCount, now); err != nil {
		return Coupon{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO coupon_redemptions (coupon_id, user_id) VALUES ($1, $2)`,
		c.ID, userID); err != nil {
		return Coupon{}, err
	}
	c.UsedCount++
	return c, nil
}
