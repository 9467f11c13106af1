package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shuddhindia/storefront-api/internal/catalog"
)

type Repo struct{ DB *pgxpool.Pool }

// Get returns the cart resolved against live product data, lines in the
// order they were first added.
func (r *Repo) Get(ctx context.Context, userID string) (View, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.product_id, p.name, p.images, p.price_paise, c.quantity
		FROM cart_items c JOIN products p ON p.id = c.product_id
		WHERE c.user_id=$1
		ORDER BY c.added_at`, userID)
	if err != nil {
		return View{}, err
	}
	defer rows.Close()

	var items []ViewLine
	for rows.Next() {
		var (
			l      ViewLine
			images []string
		)
		if err := rows.Scan(&l.ProductID, &l.Name, &images, &l.PricePaise, &l.Quantity); err != nil {
			return View{}, err
		}
		if len(images) > 0 {
			l.Image = images[0]
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return View{}, err
	}
	return NewView(items), nil
}

// UpsertLine adds quantity to an existing line or appends a new one. The
// increment happens in the database so concurrent adds cannot lose updates.
func (r *Repo) UpsertLine(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return catalog.ErrNotFound
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, productID, quantity)
	return err
}

func (r *Repo) SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET quantity=$3 WHERE user_id=$1 AND product_id=$2`,
		userID, productID, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *Repo) RemoveLine(ctx context.Context, userID, productID string) error {
	ct, err := r.DB.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

// Clear drops the whole cart. Idempotent: clearing a missing cart succeeds.
func (r *Repo) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
