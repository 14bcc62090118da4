// Package reserve moves stock in and out of the ledger as carts change:
// items entering a cart reserve stock (OUT), items leaving it in any way
// give the reservation back (IN). The actual sale transaction on placement
// is someone else's job; placement here only returns the reservation.
package reserve

import "github.com/ariefcatur/go-stock-reserve.git/internal/stock"

// Movement is one requested ledger entry. Quantity bertanda: negatif untuk
// OUT (reservasi), positif untuk IN (pengembalian).
type Movement struct {
	Type     stock.TransactionType
	Quantity int
}

// Decide maps a lifecycle event plus a quantity figure to a stock movement.
//
// For EventOrderItemUpdate, delta is original minus current quantity, so a
// positive delta means the customer lowered the quantity (return stock) and
// a negative one means they raised it (reserve more). For every other event
// delta is the item's current quantity.
//
// The second return is false when no transaction should be issued.
func Decide(event stock.EventType, delta int) (Movement, bool) {
	switch event {
	case stock.EventOrderPlace, stock.EventOrderCancel, stock.EventOrderDelete, stock.EventOrderItemDelete:
		if delta <= 0 {
			return Movement{}, false
		}
		return Movement{Type: stock.TransactionIn, Quantity: delta}, true
	case stock.EventOrderUpdate:
		// new item in a cart order
		if delta <= 0 {
			return Movement{}, false
		}
		return Movement{Type: stock.TransactionOut, Quantity: -delta}, true
	case stock.EventOrderItemUpdate:
		switch {
		case delta == 0:
			return Movement{}, false
		case delta < 0:
			return Movement{Type: stock.TransactionOut, Quantity: delta}, true
		default:
			return Movement{Type: stock.TransactionIn, Quantity: delta}, true
		}
	}
	return Movement{}, false
}
