package reserve

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/ariefcatur/go-stock-reserve.git/internal/stock"
	"github.com/rs/zerolog/log"
)

// Notifier delivers the optional user-facing notice when reserved items are
// added to a cart.
type Notifier interface {
	Notify(ctx context.Context, order *orders.Order, message string)
}

// Reactor handles the six order/order-item lifecycle events and turns them
// into stock transactions. Every collaborator is injected; the reactor owns
// no storage of its own.
type Reactor struct {
	Orders     orders.Storage
	Controlled stock.ControlledChecker
	Locations  stock.LocationResolver
	Sink       stock.TransactionSink
	Settings   settings.Store
	Notifier   Notifier // optional
}

// OnOrderPlaced returns the cart reservation for every stock-controlled item
// of the placed order. The corresponding sale OUT is issued elsewhere.
func (r *Reactor) OnOrderPlaced(ctx context.Context, p orders.OrderEventPayload) error {
	order := p.Order
	for _, item := range order.Items {
		if err := r.issue(ctx, &order, item, stock.EventOrderPlace, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// OnOrderUpdated reserves stock for items that are new on a still-in-cart
// order, detected by diffing against the pre-mutation order.
func (r *Reactor) OnOrderUpdated(ctx context.Context, p orders.OrderEventPayload) error {
	order := p.Order
	if order.WorkflowGroup != orders.WorkflowGroupOrder {
		return nil
	}
	original, err := r.originalOrder(ctx, p)
	if err != nil {
		return err
	}

	reserved := false
	for _, item := range order.Items {
		if original != nil && original.HasItem(item.ID) {
			continue
		}
		if !order.Cart {
			continue
		}
		if err := r.issue(ctx, &order, item, stock.EventOrderUpdate, item.Quantity); err != nil {
			return err
		}
		reserved = true
	}

	if reserved && r.Notifier != nil {
		cfg, err := r.Settings.Load(ctx)
		if err != nil {
			log.Error().Err(err).Msg("reserve: load settings for notice")
			return nil
		}
		if msg := cfg.Message(); msg != "" {
			r.Notifier.Notify(ctx, &order, msg)
		}
	}
	return nil
}

// OnOrderCanceled returns reservations when an order that was still a cart
// before the transition gets canceled.
func (r *Reactor) OnOrderCanceled(ctx context.Context, p orders.OrderEventPayload) error {
	order := p.Order
	original, err := r.originalOrder(ctx, p)
	if err != nil {
		return err
	}
	if original != nil && !original.Cart {
		return nil
	}
	for _, item := range order.Items {
		if err := r.issue(ctx, &order, item, stock.EventOrderCancel, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// OnOrderDeleted returns reservations for a cart order about to be hard
// deleted. The event fires pre-delete; items are unreadable afterwards.
func (r *Reactor) OnOrderDeleted(ctx context.Context, p orders.OrderEventPayload) error {
	order := p.Order
	if order.WorkflowGroup != orders.WorkflowGroupOrder {
		return nil
	}
	if !order.Cart {
		return nil
	}
	for _, item := range order.Items {
		if err := r.issue(ctx, &order, item, stock.EventOrderDelete, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// OnOrderItemUpdated adjusts the reservation when a cart item's quantity
// changes: decreases return stock, increases reserve more.
func (r *Reactor) OnOrderItemUpdated(ctx context.Context, p orders.OrderItemEventPayload) error {
	item := p.Item
	order, err := r.owningCart(ctx, item.OrderID)
	if err != nil || order == nil {
		return err
	}
	original, err := r.originalItem(ctx, p)
	if err != nil {
		return err
	}
	if original == nil {
		return nil
	}
	diff := original.Quantity - item.Quantity
	return r.issue(ctx, order, item, stock.EventOrderItemUpdate, diff)
}

// OnOrderItemDeleted returns the reservation of an item removed from a cart.
func (r *Reactor) OnOrderItemDeleted(ctx context.Context, p orders.OrderItemEventPayload) error {
	item := p.Item
	order, err := r.owningCart(ctx, item.OrderID)
	if err != nil || order == nil {
		return err
	}
	return r.issue(ctx, order, item, stock.EventOrderItemDelete, item.Quantity)
}

// issue filters the item through the stock-controlled check, runs the
// decider and records the resulting transaction. Missing entities and
// not-applicable outcomes are silent skips; sink failures propagate.
func (r *Reactor) issue(ctx context.Context, order *orders.Order, item orders.OrderItem, event stock.EventType, delta int) error {
	entity, err := r.Orders.PurchasedEntity(ctx, item.PurchasedID)
	if errors.Is(err, orders.ErrNotFound) {
		log.Debug().Str("order_item_id", item.ID).Str("purchased_id", item.PurchasedID).
			Msg("reserve: purchased entity gone, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	controlled, err := r.Controlled.IsStockControlled(ctx, entity)
	if err != nil {
		return err
	}
	if !controlled {
		return nil
	}

	mv, ok := Decide(event, delta)
	if !ok {
		return nil
	}

	cc := stock.Context{CustomerID: order.CustomerID, StoreID: order.StoreID}
	loc, err := r.Locations.TransactionLocation(ctx, cc, entity, mv.Quantity)
	if err != nil {
		return fmt.Errorf("resolve location for %s: %w", entity.ID, err)
	}

	txnID, err := r.Sink.Record(ctx, stock.Transaction{
		EntityID:   entity.ID,
		Quantity:   mv.Quantity,
		LocationID: loc.ID,
		Type:       mv.Type,
		EventType:  event,
		Metadata: stock.Metadata{
			RelatedOrderID:    order.ID,
			RelatedCustomerID: order.CustomerID,
			Message:           event.DefaultMessage(),
		},
	})
	if err != nil {
		return fmt.Errorf("record %s transaction for %s: %w", mv.Type, entity.ID, err)
	}
	log.Info().Str("txn_id", txnID).Str("entity_id", entity.ID).
		Int("qty", mv.Quantity).Str("type", string(mv.Type)).
		Str("order_id", order.ID).Msg("stock transaction recorded")
	return nil
}

// owningCart loads the item's order and returns it only when it is still a
// cart in the commerce-order workflow group; otherwise nil.
func (r *Reactor) owningCart(ctx context.Context, orderID string) (*orders.Order, error) {
	order, err := r.Orders.OrderUnchanged(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		log.Debug().Str("order_id", orderID).Msg("reserve: owning order gone, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !order.Cart || order.WorkflowGroup != orders.WorkflowGroupOrder {
		return nil, nil
	}
	return order, nil
}

// originalOrder resolves the pre-mutation order: the in-flight snapshot when
// the event carries one, otherwise the last persisted version keyed by
// original id or current id.
func (r *Reactor) originalOrder(ctx context.Context, p orders.OrderEventPayload) (*orders.Order, error) {
	if p.Original != nil {
		return p.Original, nil
	}
	id := p.OriginalID
	if id == "" {
		id = p.Order.ID
	}
	original, err := r.Orders.OrderUnchanged(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		return nil, nil
	}
	return original, err
}

func (r *Reactor) originalItem(ctx context.Context, p orders.OrderItemEventPayload) (*orders.OrderItem, error) {
	if p.Original != nil {
		return p.Original, nil
	}
	id := p.OriginalID
	if id == "" {
		id = p.Item.ID
	}
	original, err := r.Orders.OrderItemUnchanged(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		return nil, nil
	}
	return original, err
}
