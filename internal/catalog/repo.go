package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `
	p.id, p.name, p.description, p.category, p.price_paise, p.images,
	p.count_in_stock, p.created_at, p.updated_at,
	COUNT(r.id)::int, COALESCE(ROUND(AVG(r.rating), 1), 0)::float8`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePaise,
		&p.Images, &p.CountInStock, &p.CreatedAt, &p.UpdatedAt,
		&p.NumReviews, &p.AverageRating)
	return p, err
}

func (r *Repo) Create(ctx context.Context, p Product) (Product, error) {
	if p.Name == "" || p.PricePaise <= 0 || len(p.Images) == 0 {
		return Product{}, ErrInvalidProduct
	}
	p.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products (id, name, description, category, price_paise, images, count_in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Category, p.PricePaise, p.Images, p.CountInStock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *Repo) Update(ctx context.Context, p Product) error {
	if p.Name == "" || p.PricePaise <= 0 || len(p.Images) == 0 {
		return ErrInvalidProduct
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, price_paise=$5, images=$6,
		    count_in_stock=$7, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Category, p.PricePaise, p.Images, p.CountInStock)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN reviews r ON r.product_id = p.id
		WHERE p.id=$1
		GROUP BY p.id`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+productCols+`
		FROM products p LEFT JOIN reviews r ON r.product_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// UpsertReview adds the user's review of a product, or replaces an earlier
// one. A user gets one review per product.
func (r *Repo) UpsertReview(ctx context.Context, rev Review) (Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, rev.ProductID).Scan(&exists); err != nil {
		return Review{}, err
	}
	if !exists {
		return Review{}, ErrNotFound
	}
	rev.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO reviews (id, product_id, user_id, reviewer_name, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_id) DO UPDATE
		SET rating=EXCLUDED.rating, comment=EXCLUDED.comment,
		    reviewer_name=EXCLUDED.reviewer_name, updated_at=now()
		RETURNING id, created_at, updated_at`,
		rev.ID, rev.ProductID, rev.UserID, rev.ReviewerName, rev.Rating, rev.Comment,
	).Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)
	return rev, err
}

func (r *Repo) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, user_id, reviewer_name, rating, comment, created_at, updated_at
		FROM reviews WHERE product_id=$1 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.ReviewerName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *Repo) ListAllReviews(ctx context.Context) ([]AdminReview, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.reviewer_name, r.rating, r.comment,
		       r.created_at, r.updated_at, p.name
		FROM reviews r JOIN products p ON p.id = r.product_id
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminReview, 0)
	for rows.Next() {
		var rev AdminReview
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.ReviewerName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt, &rev.ProductName); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteReview(ctx context.Context, reviewID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, reviewID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}
