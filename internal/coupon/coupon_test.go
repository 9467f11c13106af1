package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "DIWALI10", Normalize("  diwali10 "))
	assert.Equal(t, "SAVE20", Normalize("Save20"))
	assert.Equal(t, "", Normalize("   "))
}

func TestCheck(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Coupon{
		Code:            "DIWALI10",
		DiscountPercent: 10,
		ExpiresAt:       now.Add(24 * time.Hour),
		UsageLimit:      2,
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Check(c, false, 0, now))
	})

	t.Run("expired", func(t *testing.T) {
		assert.ErrorIs(t, Check(c, false, 0, now.Add(48*time.Hour)), ErrExpired)
	})

	t.Run("valid at the expiry instant", func(t *testing.T) {
		require.NoError(t, Check(c, false, 0, c.ExpiresAt))
	})

	t.Run("already used by requester", func(t *testing.T) {
		assert.ErrorIs(t, Check(c, true, 1, now), ErrAlreadyUsed)
	})

	t.Run("limit reached", func(t *testing.T) {
		assert.ErrorIs(t, Check(c, false, 2, now), ErrLimitReached)
	})

	t.Run("expiry wins over use checks", func(t *testing.T) {
		assert.ErrorIs(t, Check(c, true, 5, now.Add(48*time.Hour)), ErrExpired)
	})
}
