package sales

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales_manager/internal/catalog"
)

func widget() catalog.Product {
	return catalog.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("10.00"), Stock: 5}
}

func TestCartAdd_NewLine(t *testing.T) {
	var c Cart
	line, err := c.Add(widget(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, line.Quantity)
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, "30.00", c.Total().StringFixed(2))
}

func TestCartAdd_MergesAndChecksCombinedQuantity(t *testing.T) {
	var c Cart
	_, err := c.Add(widget(), 3)
	require.NoError(t, err)

	_, err = c.Add(widget(), 3)
	assert.ErrorIs(t, err, ErrOutOfStock, "3+3 exceeds stock 5 even though 3 alone does not")
	assert.Equal(t, 3, c.Lines()[0].Quantity)

	line, err := c.Add(widget(), 2)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.Len(t, c.Lines(), 1)
}

func TestCartAdd_HugeQuantityOnExistingLine(t *testing.T) {
	var c Cart
	_, err := c.Add(widget(), 1)
	require.NoError(t, err)

	_, err = c.Add(widget(), math.MaxInt)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
	assert.Equal(t, "10.00", c.Total().StringFixed(2))
}

func TestCartAdd_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		qty     int
		product catalog.Product
		wantErr error
	}{
		{"more than stock", 6, widget(), ErrOutOfStock},
		{"zero stock", 1, catalog.Product{ID: 2, Name: "Gone", Stock: 0}, ErrOutOfStock},
		{"zero quantity", 0, widget(), ErrInvalidQuantity},
		{"negative quantity", -2, widget(), ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			_, err := c.Add(tt.product, tt.qty)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, c.Empty())
		})
	}
}

func TestCartAddThenRemoveRestoresPriorState(t *testing.T) {
	var c Cart
	_, err := c.Add(widget(), 1)
	require.NoError(t, err)
	before := c.Lines()

	_, err = c.Add(catalog.Product{ID: 2, Name: "Gadget", Price: decimal.NewFromInt(4), Stock: 9}, 2)
	require.NoError(t, err)
	_, err = c.Remove(2)
	require.NoError(t, err)

	assert.Equal(t, before, c.Lines())
}

func TestCartRemove_InvalidIndex(t *testing.T) {
	var c Cart
	_, _ = c.Add(widget(), 1)

	for _, idx := range []int{0, -1, 2} {
		_, err := c.Remove(idx)
		assert.ErrorIs(t, err, ErrInvalidIndex, "index %d", idx)
	}
	assert.Len(t, c.Lines(), 1)
}

func TestCartLinesAreSnapshots(t *testing.T) {
	var c Cart
	p := widget()
	_, _ = c.Add(p, 1)

	p.Price = decimal.NewFromInt(99)
	p.Name = "Renamed"

	lines := c.Lines()
	assert.Equal(t, "Widget", lines[0].Name)
	assert.Equal(t, "10.00", lines[0].Price.StringFixed(2))

	lines[0].Quantity = 100
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCartClear(t *testing.T) {
	var c Cart
	_, _ = c.Add(widget(), 2)
	c.Clear()
	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" Cash ")
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, m)

	m, err = ParsePaymentMethod("credit")
	require.NoError(t, err)
	assert.Equal(t, PaymentCredit, m)

	_, err = ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}
