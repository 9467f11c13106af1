package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrInvalidProduct = errors.New("name, price and at least one image are required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	PricePaise    int64     `json:"price_paise"`
	Images        []string  `json:"images"`
	CountInStock  int       `json:"count_in_stock"`
	NumReviews    int       `json:"num_reviews"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p Product) InStock() bool { return p.CountInStock > 0 }

type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	UserID       string    `json:"user_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminReview is a review joined with its product name for back-office views.
type AdminReview struct {
	Review
	ProductName string `json:"product_name"`
}
