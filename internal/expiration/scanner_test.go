package expiration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ariefcatur/go-stock-reserve.git/internal/expiration"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scannerFixture struct {
	storage  *memStorage
	payments *fakePayments
	checker  *fakeChecker
	queue    *captureQueue
	scanner  *expiration.Scanner
}

func newScannerFixture() *scannerFixture {
	st := newMemStorage()
	payments := &fakePayments{counts: map[string]int{}}
	checker := &fakeChecker{always: map[string]bool{}, inStock: map[string]bool{}}
	queue := &captureQueue{}
	return &scannerFixture{
		storage:  st,
		payments: payments,
		checker:  checker,
		queue:    queue,
		scanner: &expiration.Scanner{
			Orders:     st,
			Payments:   payments,
			Stock:      checker,
			Controlled: &fakeControlled{controlled: map[string]bool{"var-x": true, "var-y": true, "var-plain": false}},
			Locations:  fakeLocations{},
			Settings:   &fakeSettings{cfg: settings.Defaults()},
			Queue:      queue,
		},
	}
}

func staleCart(id string, age time.Duration, items ...orders.OrderItem) orders.Order {
	return orders.Order{
		ID:            id,
		Type:          "default",
		CustomerID:    "cust-1",
		StoreID:       "store-1",
		Cart:          true,
		State:         orders.StateDraft,
		WorkflowGroup: orders.WorkflowGroupOrder,
		Items:         items,
		Changed:       time.Now().UTC().Add(-age),
	}
}

func TestScanner_QueuesOutOfStockItem(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x", Label: "X"}
	f.storage.addOrder(staleCart("order-a", 3*time.Hour,
		orders.OrderItem{ID: "item-x", OrderID: "order-a", PurchasedID: "var-x", Quantity: 2},
	))

	require.NoError(t, f.scanner.Run(context.Background()))

	require.Len(t, f.queue.batches, 1)
	assert.Equal(t, "order-a", f.queue.batches[0].OrderID)
	assert.Equal(t, []string{"item-x"}, f.queue.batches[0].OrderItemIDs)
}

func TestScanner_SkipsAlwaysInStockItem(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-y"] = &orders.PurchasableEntity{ID: "var-y", Label: "Y"}
	f.checker.always["var-y"] = true
	f.storage.addOrder(staleCart("order-b", 3*time.Hour,
		orders.OrderItem{ID: "item-y", OrderID: "order-b", PurchasedID: "var-y", Quantity: 1},
	))

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_SkipsInStockItem(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	f.checker.inStock["var-x"] = true
	f.storage.addOrder(staleCart("order-a", 30*24*time.Hour,
		orders.OrderItem{ID: "item-x", OrderID: "order-a", PurchasedID: "var-x", Quantity: 2},
	))

	// old enough by any measure, but stock is plentiful
	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_SkipsUncontrolledItem(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-plain"] = &orders.PurchasableEntity{ID: "var-plain"}
	f.storage.addOrder(staleCart("order-a", 3*time.Hour,
		orders.OrderItem{ID: "item-p", OrderID: "order-a", PurchasedID: "var-plain", Quantity: 2},
	))

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_ExcludesOrderWithPayments(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	f.storage.addOrder(staleCart("order-c", 3*time.Hour,
		orders.OrderItem{ID: "item-x", OrderID: "order-c", PurchasedID: "var-x", Quantity: 2},
	))
	f.payments.counts["order-c"] = 1

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_IgnoresFreshCarts(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	// inside the 2h scan window, even though out of stock
	f.storage.addOrder(staleCart("order-a", 30*time.Minute,
		orders.OrderItem{ID: "item-x", OrderID: "order-a", PurchasedID: "var-x", Quantity: 2},
	))

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_DisabledIsNoop(t *testing.T) {
	f := newScannerFixture()
	cfg := settings.Defaults()
	cfg.CartExpirationEnabled = false
	f.scanner.Settings = &fakeSettings{cfg: cfg}

	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	f.storage.addOrder(staleCart("order-a", 3*time.Hour,
		orders.OrderItem{ID: "item-x", OrderID: "order-a", PurchasedID: "var-x", Quantity: 2},
	))

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Empty(t, f.queue.batches)
}

func TestScanner_BatchPerSourceOrder(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	f.storage.entities["var-y"] = &orders.PurchasableEntity{ID: "var-y"}
	f.storage.addOrder(staleCart("order-a", 3*time.Hour,
		orders.OrderItem{ID: "item-1", OrderID: "order-a", PurchasedID: "var-x", Quantity: 1},
		orders.OrderItem{ID: "item-2", OrderID: "order-a", PurchasedID: "var-y", Quantity: 1},
	))
	f.storage.addOrder(staleCart("order-b", 4*time.Hour,
		orders.OrderItem{ID: "item-3", OrderID: "order-b", PurchasedID: "var-x", Quantity: 1},
	))

	require.NoError(t, f.scanner.Run(context.Background()))

	require.Len(t, f.queue.batches, 2)
	byOrder := map[string][]string{}
	for _, b := range f.queue.batches {
		byOrder[b.OrderID] = b.OrderItemIDs
	}
	assert.Equal(t, []string{"item-1", "item-2"}, byOrder["order-a"])
	assert.Equal(t, []string{"item-3"}, byOrder["order-b"])
}

func TestScanner_PagesThroughLargeResultSets(t *testing.T) {
	f := newScannerFixture()
	f.storage.entities["var-x"] = &orders.PurchasableEntity{ID: "var-x"}
	// more than one page of stale carts
	for i := 0; i < 130; i++ {
		id := fmt.Sprintf("order-%03d", i)
		f.storage.addOrder(staleCart(id, 3*time.Hour,
			orders.OrderItem{ID: "item-" + id, OrderID: id, PurchasedID: "var-x", Quantity: 1},
		))
	}

	require.NoError(t, f.scanner.Run(context.Background()))
	assert.Len(t, f.queue.batches, 130)
}
