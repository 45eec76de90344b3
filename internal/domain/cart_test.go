package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculate_Empty(t *testing.T) {
	c := Recalculate(nil)

	assert.NotNil(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, int64(0), c.TotalPrice)
	assert.Equal(t, 0, c.ItemsCount)
}

func TestRecalculate_Totals(t *testing.T) {
	items := []CartItem{
		{Product: ProductSnapshot{ID: 1}, Quantity: 2, Price: 25000, Subtotal: 50000},
		{Product: ProductSnapshot{ID: 2}, Quantity: 1, Price: 65000, Subtotal: 65000},
	}

	c := Recalculate(items)

	assert.Equal(t, 3, c.TotalItems)
	assert.Equal(t, int64(115000), c.TotalPrice)
	assert.Equal(t, 2, c.ItemsCount)
}

func TestFind(t *testing.T) {
	c := Recalculate([]CartItem{
		{Product: ProductSnapshot{ID: 7}},
		{Product: ProductSnapshot{ID: 9}},
	})

	assert.Equal(t, 1, c.Find(9))
	assert.Equal(t, -1, c.Find(999))
}

func TestClone_Independent(t *testing.T) {
	c := Recalculate([]CartItem{
		{ID: "a", Product: ProductSnapshot{ID: 1}, Quantity: 1, Price: 100, Subtotal: 100},
	})

	clone := c.Clone()
	clone.Items[0].Quantity = 42

	assert.Equal(t, 1, c.Items[0].Quantity)
}
