package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("product not in cart")
)

// Line is the stored shape: a product reference and a quantity. Prices are
// never stored with the cart; reads join the live catalog.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ViewLine is a line resolved against the catalog.
type ViewLine struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	PricePaise int64  `json:"price_paise"`
	Quantity   int    `json:"quantity"`
	LinePaise  int64  `json:"line_paise"`
}

type View struct {
	Items         []ViewLine `json:"items"`
	SubtotalPaise int64      `json:"subtotal_paise"`
}

// NewView fills in the per-line and cart totals.
func NewView(items []ViewLine) View {
	v := View{Items: items}
	if v.Items == nil {
		v.Items = []ViewLine{}
	}
	for i := range v.Items {
		v.Items[i].LinePaise = v.Items[i].PricePaise * int64(v.Items[i].Quantity)
		v.SubtotalPaise += v.Items[i].LinePaise
	}
	return v
}
