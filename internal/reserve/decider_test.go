package reserve_test

import (
	"testing"

	"github.com/ariefcatur/go-stock-reserve.git/internal/reserve"
	"github.com/ariefcatur/go-stock-reserve.git/internal/stock"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		event  stock.EventType
		delta  int
		want   reserve.Movement
		wantOK bool
	}{
		{
			name:   "order_placed_returns_reservation",
			event:  stock.EventOrderPlace,
			delta:  3,
			want:   reserve.Movement{Type: stock.TransactionIn, Quantity: 3},
			wantOK: true,
		},
		{
			name:   "order_placed_zero_quantity",
			event:  stock.EventOrderPlace,
			delta:  0,
			wantOK: false,
		},
		{
			name:   "new_cart_item_reserves_negative",
			event:  stock.EventOrderUpdate,
			delta:  2,
			want:   reserve.Movement{Type: stock.TransactionOut, Quantity: -2},
			wantOK: true,
		},
		{
			name:   "cancel_returns_full_quantity",
			event:  stock.EventOrderCancel,
			delta:  5,
			want:   reserve.Movement{Type: stock.TransactionIn, Quantity: 5},
			wantOK: true,
		},
		{
			name:   "delete_returns_full_quantity",
			event:  stock.EventOrderDelete,
			delta:  1,
			want:   reserve.Movement{Type: stock.TransactionIn, Quantity: 1},
			wantOK: true,
		},
		{
			name:   "quantity_unchanged_is_noop",
			event:  stock.EventOrderItemUpdate,
			delta:  0,
			wantOK: false,
		},
		{
			name:  "quantity_increase_reserves_difference",
			event: stock.EventOrderItemUpdate,
			// 3 -> 5: diff = original - new = -2
			delta:  -2,
			want:   reserve.Movement{Type: stock.TransactionOut, Quantity: -2},
			wantOK: true,
		},
		{
			name:  "quantity_decrease_returns_difference",
			event: stock.EventOrderItemUpdate,
			// 5 -> 3: diff = 2
			delta:  2,
			want:   reserve.Movement{Type: stock.TransactionIn, Quantity: 2},
			wantOK: true,
		},
		{
			name:   "item_delete_returns_quantity",
			event:  stock.EventOrderItemDelete,
			delta:  4,
			want:   reserve.Movement{Type: stock.TransactionIn, Quantity: 4},
			wantOK: true,
		},
		{
			name:   "unknown_event_is_noop",
			event:  stock.EventType("something_else"),
			delta:  7,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv, ok := reserve.Decide(tt.event, tt.delta)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, mv)
			}
		})
	}
}
