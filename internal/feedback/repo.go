package feedback

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, f Feedback) (Feedback, error) {
	if strings.TrimSpace(f.Message) == "" {
		return Feedback{}, ErrEmptyMessage
	}
	f.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO feedback (id, user_id, order_id, name, email, message, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		f.ID, f.UserID, f.OrderID, f.Name, f.Email, f.Message, f.Rating,
	).Scan(&f.CreatedAt)
	return f, err
}

func (r *Repo) List(ctx context.Context) ([]Feedback, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, order_id, name, email, message, rating, created_at
		FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Feedback, 0)
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.OrderID, &f.Name, &f.Email,
			&f.Message, &f.Rating, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
