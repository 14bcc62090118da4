package orders

import "time"

// Order adalah commerce order; selama Cart=true masih berupa shopping cart.
type Order struct {
	ID            string
	Type          string // order type id, e.g. "default"
	CustomerID    string
	StoreID       string
	Cart          bool
	State         State
	WorkflowGroup string
	Items         []OrderItem
	Changed       time.Time // last modification time
}

type OrderItem struct {
	ID          string
	OrderID     string
	PurchasedID string // purchasable entity id
	Quantity    int
}

// PurchasableEntity: product variation dsb. Flag stok (controlled /
// always-in-stock) di-resolve lewat collaborator di package stock.
type PurchasableEntity struct {
	ID    string
	SKU   string
	Label string
}

// HasItem reports whether the order carries an item with the given id.
func (o *Order) HasItem(itemID string) bool {
	for _, it := range o.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// RemoveItem drops the item from the order's in-memory item set.
// Persistence is up to the caller (Storage.SaveOrder).
func (o *Order) RemoveItem(itemID string) {
	out := o.Items[:0]
	for _, it := range o.Items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	o.Items = out
}
