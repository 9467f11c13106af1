package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		percent  int
		want     int64
	}{
		{"no coupon", 25000, 0, 25000},
		{"ten percent", 25000, 10, 22500},
		{"rounds half up", 9999, 10, 8999}, // 8999.1 -> 8999
		{"exact result", 150, 10, 135},
		{"odd paise", 101, 50, 51}, // 50.5 -> 51
		{"full discount", 25000, 100, 0},
		{"over full clamps to zero", 25000, 150, 0},
		{"negative treated as none", 25000, -5, 25000},
		{"zero subtotal", 0, 40, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyDiscount(tc.subtotal, tc.percent))
		})
	}
}
