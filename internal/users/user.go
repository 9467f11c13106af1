package users

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           string    `json:"id"`
	PhoneOrEmail string    `json:"phone_or_email"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
