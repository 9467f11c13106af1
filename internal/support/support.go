package support

import (
	"errors"
	"time"
)

var ErrEmptyText = errors.New("support message text is required")

// Message is one customer support note; the back-office reads them with the
// sender's profile joined in.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
