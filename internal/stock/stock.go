// Package stock defines the contracts toward the inventory subsystem: stock
// checks, location resolution and the transaction ledger. The reservation
// core only decides when and how much stock to move; the ledger itself is
// behind TransactionSink.
package stock

import (
	"context"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
)

type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// EventType identifies the lifecycle event that originated a transaction.
type EventType string

const (
	EventOrderPlace      EventType = "order_place"
	EventOrderUpdate     EventType = "order_update"
	EventOrderCancel     EventType = "order_cancel"
	EventOrderDelete     EventType = "order_delete"
	EventOrderItemUpdate EventType = "order_item_update"
	EventOrderItemDelete EventType = "order_item_delete"
)

// DefaultMessage is stored in the transaction metadata for traceability.
func (e EventType) DefaultMessage() string {
	switch e {
	case EventOrderPlace:
		return "order placed, reservation returned"
	case EventOrderUpdate:
		return "item added to cart, stock reserved"
	case EventOrderCancel:
		return "order canceled, reservation returned"
	case EventOrderDelete:
		return "order deleted, reservation returned"
	case EventOrderItemUpdate:
		return "cart quantity changed"
	case EventOrderItemDelete:
		return "item removed from cart, reservation returned"
	}
	return string(e)
}

type Location struct {
	ID   string
	Name string
}

// Context is the commerce context a transaction happens in.
type Context struct {
	CustomerID string
	StoreID    string
}

// Metadata travels with a transaction into the ledger.
type Metadata struct {
	RelatedOrderID    string
	RelatedCustomerID string
	Message           string
}

// Transaction adalah request satu pergerakan stok. Quantity bertanda:
// negatif untuk OUT (reservasi), positif untuk IN (pengembalian).
type Transaction struct {
	EntityID   string
	Quantity   int
	LocationID string
	Type       TransactionType
	EventType  EventType
	Metadata   Metadata
}

// Checker answers availability questions for a purchasable entity.
type Checker interface {
	// IsAlwaysInStock reports that the entity is not inventory-managed.
	IsAlwaysInStock(ctx context.Context, entity *orders.PurchasableEntity) (bool, error)
	// IsInStock reports availability at any of the given locations.
	IsInStock(ctx context.Context, entity *orders.PurchasableEntity, locations []Location) (bool, error)
}

// ControlledChecker is consulted before any reservation logic runs at all.
type ControlledChecker interface {
	IsStockControlled(ctx context.Context, entity *orders.PurchasableEntity) (bool, error)
}

type LocationResolver interface {
	TransactionLocation(ctx context.Context, cc Context, entity *orders.PurchasableEntity, quantity int) (Location, error)
	// Locations lists every known stock location.
	Locations(ctx context.Context) ([]Location, error)
}

// TransactionSink records a transaction in the stock ledger and returns its
// id. A failure is surfaced to the caller; the core never retries.
type TransactionSink interface {
	Record(ctx context.Context, txn Transaction) (string, error)
}
