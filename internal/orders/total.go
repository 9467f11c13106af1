package orders

// ApplyDiscount reduces a paise subtotal by a whole-percent discount,
// rounding half up to the nearest paisa. With amounts in minor units this is
// exactly rounding the rupee total to two decimals.
func ApplyDiscount(subtotalPaise int64, discountPercent int) int64 {
	if discountPercent <= 0 {
		return subtotalPaise
	}
	if discountPercent >= 100 {
		return 0
	}
	return (subtotalPaise*int64(100-discountPercent) + 50) / 100
}
