package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	v := NewView([]ViewLine{
		{ProductID: "p1", Name: "Kesar Mango Pulp", PricePaise: 25000, Quantity: 2},
		{ProductID: "p2", Name: "Bhut Jolokia Pickle", PricePaise: 18000, Quantity: 1},
	})

	assert.Equal(t, int64(50000), v.Items[0].LinePaise)
	assert.Equal(t, int64(18000), v.Items[1].LinePaise)
	assert.Equal(t, int64(68000), v.SubtotalPaise)
}

func TestNewViewEmpty(t *testing.T) {
	v := NewView(nil)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
	assert.Zero(t, v.SubtotalPaise)
}
