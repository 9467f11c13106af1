package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	phone_or_email TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	is_admin       BOOLEAN NOT NULL DEFAULT FALSE,
	password_hash  TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	price_paise    BIGINT NOT NULL CHECK (price_paise >= 0),
	images         TEXT[] NOT NULL DEFAULT '{}',
	count_in_stock INT NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reviews (
	id            TEXT PRIMARY KEY,
	product_id    TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	user_id       TEXT NOT NULL,
	reviewer_name TEXT NOT NULL DEFAULT '',
	rating        INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment       TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (product_id, user_id)
);

CREATE TABLE IF NOT EXISTS cart_items (
	user_id    TEXT NOT NULL,
	product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	quantity   INT NOT NULL CHECK (quantity >= 1),
	added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS coupons (
	id               TEXT PRIMARY KEY,
	code             TEXT NOT NULL UNIQUE,
	discount_percent INT NOT NULL CHECK (discount_percent BETWEEN 1 AND 100),
	expires_at       TIMESTAMPTZ NOT NULL,
	usage_limit      INT NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS coupon_redemptions (
	coupon_id   TEXT NOT NULL REFERENCES coupons(id) ON DELETE CASCADE,
	user_id     TEXT NOT NULL,
	redeemed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (coupon_id, user_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL,
	total_paise        BIGINT NOT NULL,
	applied_coupon     TEXT NOT NULL DEFAULT '',
	discount_percent   INT NOT NULL DEFAULT 0,
	payment_method     TEXT NOT NULL DEFAULT 'COD',
	is_paid            BOOLEAN NOT NULL DEFAULT FALSE,
	paid_at            TIMESTAMPTZ,
	payment_id         TEXT NOT NULL DEFAULT '',
	gateway_order_id   TEXT NOT NULL DEFAULT '',
	is_delivered       BOOLEAN NOT NULL DEFAULT FALSE,
	delivered_at       TIMESTAMPTZ,
	status             TEXT NOT NULL DEFAULT 'Pending',
	courier            TEXT NOT NULL DEFAULT '',
	tracking_id        TEXT NOT NULL DEFAULT '',
	estimated_delivery TIMESTAMPTZ,
	notes              TEXT NOT NULL DEFAULT '',
	ship_name          TEXT NOT NULL,
	ship_phone         TEXT NOT NULL,
	ship_address       TEXT NOT NULL,
	ship_city          TEXT NOT NULL,
	ship_state         TEXT NOT NULL,
	ship_pincode       TEXT NOT NULL,
	ship_alt_phone     TEXT NOT NULL DEFAULT '',
	ship_nearby        TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
	order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id TEXT NOT NULL,
	quantity   INT NOT NULL CHECK (quantity >= 1)
);

CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL DEFAULT '',
	order_id   TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL,
	rating     INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS support_messages (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	text       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
