package orders_test

import (
	"testing"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, orders.CanTransition(orders.StateDraft, orders.StatePlaced))
	assert.True(t, orders.CanTransition(orders.StateDraft, orders.StateCanceled))
	assert.True(t, orders.CanTransition(orders.StatePlaced, orders.StateCompleted))
	assert.False(t, orders.CanTransition(orders.StateCompleted, orders.StateDraft))
	assert.False(t, orders.CanTransition(orders.StateCanceled, orders.StatePlaced))
}

func TestOrder_RemoveItem(t *testing.T) {
	o := orders.Order{
		ID: "order-1",
		Items: []orders.OrderItem{
			{ID: "item-1", OrderID: "order-1", PurchasedID: "var-a", Quantity: 1},
			{ID: "item-2", OrderID: "order-1", PurchasedID: "var-b", Quantity: 2},
		},
	}

	assert.True(t, o.HasItem("item-1"))

	o.RemoveItem("item-1")
	assert.False(t, o.HasItem("item-1"))
	assert.Len(t, o.Items, 1)
	assert.Equal(t, "item-2", o.Items[0].ID)

	// removing an unknown id is harmless
	o.RemoveItem("item-404")
	assert.Len(t, o.Items, 1)
}
