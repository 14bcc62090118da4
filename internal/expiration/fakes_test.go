package expiration_test

import (
	"context"
	"sort"
	"time"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/ariefcatur/go-stock-reserve.git/internal/stock"
)

type memStorage struct {
	orders   map[string]*orders.Order
	items    map[string]*orders.OrderItem
	entities map[string]*orders.PurchasableEntity
	types    []string

	itemLoadErr map[string]error

	savedOrders   []string
	deletedOrders []string
	deletedItems  []string
}

func newMemStorage() *memStorage {
	return &memStorage{
		orders:      map[string]*orders.Order{},
		items:       map[string]*orders.OrderItem{},
		entities:    map[string]*orders.PurchasableEntity{},
		types:       []string{"default"},
		itemLoadErr: map[string]error{},
	}
}

func (m *memStorage) addOrder(o orders.Order) {
	cp := o
	m.orders[o.ID] = &cp
	for _, it := range o.Items {
		itc := it
		m.items[it.ID] = &itc
	}
}

func (m *memStorage) OrderUnchanged(_ context.Context, id string) (*orders.Order, error) {
	if o, ok := m.orders[id]; ok {
		cp := *o
		cp.Items = append([]orders.OrderItem(nil), o.Items...)
		return &cp, nil
	}
	return nil, orders.ErrNotFound
}

func (m *memStorage) OrderItemUnchanged(_ context.Context, id string) (*orders.OrderItem, error) {
	if err, ok := m.itemLoadErr[id]; ok {
		return nil, err
	}
	if it, ok := m.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, orders.ErrNotFound
}

func (m *memStorage) PurchasedEntity(_ context.Context, id string) (*orders.PurchasableEntity, error) {
	if p, ok := m.entities[id]; ok {
		return p, nil
	}
	return nil, orders.ErrNotFound
}

func (m *memStorage) SaveOrder(_ context.Context, o *orders.Order) error {
	cp := *o
	cp.Items = append([]orders.OrderItem(nil), o.Items...)
	m.orders[o.ID] = &cp
	m.savedOrders = append(m.savedOrders, o.ID)
	return nil
}

func (m *memStorage) DeleteOrder(_ context.Context, id string) error {
	delete(m.orders, id)
	m.deletedOrders = append(m.deletedOrders, id)
	return nil
}

func (m *memStorage) DeleteOrderItem(_ context.Context, id string) error {
	delete(m.items, id)
	m.deletedItems = append(m.deletedItems, id)
	return nil
}

func (m *memStorage) OrderTypeIDs(context.Context) ([]string, error) {
	return m.types, nil
}

func (m *memStorage) ExpiredCartIDs(_ context.Context, orderType string, before time.Time, limit, offset int) ([]string, error) {
	var ids []string
	for id, o := range m.orders {
		if o.Type == orderType && o.Cart && !o.Changed.After(before) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakePayments struct{ counts map[string]int }

func (f *fakePayments) CountPayments(_ context.Context, orderID string) (int, error) {
	return f.counts[orderID], nil
}

type fakeChecker struct {
	always  map[string]bool
	inStock map[string]bool
}

func (f *fakeChecker) IsAlwaysInStock(_ context.Context, e *orders.PurchasableEntity) (bool, error) {
	return f.always[e.ID], nil
}

func (f *fakeChecker) IsInStock(_ context.Context, e *orders.PurchasableEntity, _ []stock.Location) (bool, error) {
	return f.inStock[e.ID], nil
}

type fakeControlled struct{ controlled map[string]bool }

func (f *fakeControlled) IsStockControlled(_ context.Context, e *orders.PurchasableEntity) (bool, error) {
	return f.controlled[e.ID], nil
}

type fakeLocations struct{}

func (fakeLocations) TransactionLocation(context.Context, stock.Context, *orders.PurchasableEntity, int) (stock.Location, error) {
	return stock.Location{ID: "loc-1", Name: "main"}, nil
}

func (fakeLocations) Locations(context.Context) ([]stock.Location, error) {
	return []stock.Location{{ID: "loc-1", Name: "main"}}, nil
}

type fakeSettings struct{ cfg settings.Settings }

func (f *fakeSettings) Load(context.Context) (settings.Settings, error) { return f.cfg, nil }

type captureQueue struct{ batches []orders.CartExpirationPayload }

func (c *captureQueue) Enqueue(_ context.Context, orderID string, orderItemIDs []string) error {
	c.batches = append(c.batches, orders.CartExpirationPayload{
		OrderID:      orderID,
		OrderItemIDs: orderItemIDs,
	})
	return nil
}
