package orders

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("orders: not found")

// Storage is the host's order store. The *Unchanged loads bypass any cache
// and return the last persisted version, which is what both the reactor's
// original-entity fallback and the expiration worker's re-validation need.
type Storage interface {
	OrderUnchanged(ctx context.Context, id string) (*Order, error)
	OrderItemUnchanged(ctx context.Context, id string) (*OrderItem, error)
	PurchasedEntity(ctx context.Context, id string) (*PurchasableEntity, error)

	// SaveOrder persists the order row and its current item set; items no
	// longer present on the order are detached.
	SaveOrder(ctx context.Context, o *Order) error
	DeleteOrder(ctx context.Context, id string) error
	DeleteOrderItem(ctx context.Context, id string) error

	OrderTypeIDs(ctx context.Context) ([]string, error)
	// ExpiredCartIDs pages through cart orders of the given type whose
	// changed timestamp is at or before the cutoff.
	ExpiredCartIDs(ctx context.Context, orderType string, before time.Time, limit, offset int) ([]string, error)
}

// PaymentLookup answers how many payment records reference an order.
type PaymentLookup interface {
	CountPayments(ctx context.Context, orderID string) (int, error)
}
