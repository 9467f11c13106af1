package feedback

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("feedback not found")
	ErrEmptyMessage = errors.New("feedback message is required")
)

// Feedback is a store-experience note from a customer or guest checkout.
// Name and email are stored as written so the entry survives account
// deletion; UserID and OrderID are optional references.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	OrderID   string    `json:"order_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
