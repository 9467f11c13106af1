package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type Repo struct{ DB *pgxpool.Pool }

// UpsertByContact returns the user for a verified phone/email, creating the
// record on first login.
func (r *Repo) UpsertByContact(ctx context.Context, phoneOrEmail string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users (id, phone_or_email)
		VALUES ($1, $2)
		ON CONFLICT (phone_or_email) DO UPDATE SET phone_or_email = EXCLUDED.phone_or_email
		RETURNING id, phone_or_email, name, email, is_admin, created_at`,
		uuid.NewString(), phoneOrEmail,
	).Scan(&u.ID, &u.PhoneOrEmail, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (r *Repo) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, phone_or_email, name, email, is_admin, created_at
		FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.PhoneOrEmail, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) UpdateProfile(ctx context.Context, id, name, email string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE users SET name=$2, email=$3 WHERE id=$1`, id, name, email)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]User, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, phone_or_email, name, email, is_admin, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.PhoneOrEmail, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// Authenticate checks an admin login against the stored bcrypt hash.
func (r *Repo) Authenticate(ctx context.Context, email, password string) (User, error) {
	var (
		u    User
		hash *string
	)
	err := r.DB.QueryRow(ctx, `
		SELECT id, phone_or_email, name, email, is_admin, password_hash, created_at
		FROM users WHERE phone_or_email=$1`, email,
	).Scan(&u.ID, &u.PhoneOrEmail, &u.Name, &u.Email, &u.IsAdmin, &hash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if hash == nil || bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (r *Repo) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		INSERT INTO users (id, phone_or_email, email, is_admin, password_hash)
		VALUES ($1, $2, $2, TRUE, $3)
		ON CONFLICT (phone_or_email) DO NOTHING`,
		uuid.NewString(), email, string(hash))
	return err
}
