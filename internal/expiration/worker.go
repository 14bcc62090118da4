package expiration

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafkax "github.com/ariefcatur/go-stock-reserve.git/internal/kafka"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
)

// Worker consumes queued expiration batches. Every id is re-validated
// against a freshly loaded order and the current settings before anything is
// removed, which keeps re-delivered or stale batches harmless.
type Worker struct {
	Orders   orders.Storage
	Settings settings.Store
}

// Handle dipasang sebagai handler consumer topic cart.expiration.
func (w *Worker) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != EventCartExpiration {
		return nil
	}
	p, err := kafkax.UnwrapPayload[orders.CartExpirationPayload](env.Payload)
	if err != nil {
		return err
	}
	return w.Process(ctx, p.OrderItemIDs)
}

// Process runs one batch. When expiration has been switched off since
// enqueue the whole batch is dropped without partial work. Within a batch
// every id is independent; a failure on one never aborts the rest.
func (w *Worker) Process(ctx context.Context, orderItemIDs []string) error {
	cfg, err := w.Settings.Load(ctx)
	if err != nil {
		return err
	}
	if !cfg.CartExpirationEnabled {
		return nil
	}
	threshold := cfg.Interval.Threshold(time.Now().UTC())

	for _, id := range orderItemIDs {
		if err := w.expire(ctx, id, threshold); err != nil {
			log.Error().Err(err).Str("order_item_id", id).Msg("expiration: expire item failed")
		}
	}
	return nil
}

func (w *Worker) expire(ctx context.Context, orderItemID string, threshold time.Time) error {
	item, err := w.Orders.OrderItemUnchanged(ctx, orderItemID)
	if errors.Is(err, orders.ErrNotFound) {
		log.Debug().Str("order_item_id", orderItemID).Msg("expiration: order item gone")
		return nil
	}
	if err != nil {
		return err
	}

	order, err := w.Orders.OrderUnchanged(ctx, item.OrderID)
	if errors.Is(err, orders.ErrNotFound) {
		log.Debug().Str("order_id", item.OrderID).Msg("expiration: order gone")
		return nil
	}
	if err != nil {
		return err
	}

	// Order mungkin sudah disentuh atau di-checkout sejak enqueue.
	if !order.Cart || order.Changed.After(threshold) {
		return nil
	}

	order.RemoveItem(item.ID)
	order.Changed = time.Now().UTC()
	if err := w.Orders.SaveOrder(ctx, order); err != nil {
		return err
	}

	if len(order.Items) == 0 {
		log.Debug().Str("order_id", order.ID).Msg("expiration: deleting empty cart order")
		if err := w.Orders.DeleteOrder(ctx, order.ID); err != nil {
			return err
		}
	}

	return w.Orders.DeleteOrderItem(ctx, item.ID)
}
