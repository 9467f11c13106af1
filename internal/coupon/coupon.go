package coupon

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("coupon not found")
	ErrExpired      = errors.New("coupon expired")
	ErrAlreadyUsed  = errors.New("coupon already used")
	ErrLimitReached = errors.New("coupon usage limit reached")
	ErrDuplicate    = errors.New("coupon code already exists")
	ErrInvalidCode  = errors.New("coupon code and discount (1-100) are required")
)

type Coupon struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	ExpiresAt       time.Time `json:"expires_at"`
	UsageLimit      int       `json:"usage_limit"`
	UsedCount       int       `json:"used_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Normalize maps user input onto the stored form: trimmed, uppercase.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Check decides whether the requesting user may redeem the coupon now.
// usedByRequester and usedCount describe the used-by set at decision time.
func Check(c Coupon, usedByRequester bool, usedCount int, now time.Time) error {
	if now.After(c.ExpiresAt) {
		return ErrExpired
	}
	if usedByRequester {
		return ErrAlreadyUsed
	}
	if usedCount >= c.UsageLimit {
		return ErrLimitReached
	}
	return nil
}
