package support

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, userID, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyText
	}
	m := Message{ID: uuid.NewString(), UserID: userID, Text: text}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO support_messages (id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		m.ID, m.UserID, m.Text,
	).Scan(&m.CreatedAt)
	return m, err
}

func (r *Repo) List(ctx context.Context) ([]Message, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT m.id, m.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), m.text, m.created_at
		FROM support_messages m LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserName, &m.UserEmail, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
