package reserve

import (
	"context"
	"encoding/json"
	"fmt"

	kafkax "github.com/ariefcatur/go-stock-reserve.git/internal/kafka"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service adalah glue antara consumer Kafka dan Reactor: decode envelope,
// dedup via Redis, dispatch per event type.
type Service struct {
	Reactor *Reactor
	Redis   *redis.Client
}

// HandleLifecycleEvent dipasang sebagai handler consumer topic
// order.lifecycle.
func (s *Service) HandleLifecycleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup via Redis (pakai event_id); queue-nya at-least-once
	dkey := fmt.Sprintf(redisx.KeyDedup, "reserve", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderPlaced(ctx, p)
	case orders.EventOrderUpdated:
		p, err := kafkax.UnwrapPayload[orders.OrderEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderUpdated(ctx, p)
	case orders.EventOrderCanceled:
		p, err := kafkax.UnwrapPayload[orders.OrderEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderCanceled(ctx, p)
	case orders.EventOrderPreDelete:
		p, err := kafkax.UnwrapPayload[orders.OrderEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderDeleted(ctx, p)
	case orders.EventOrderItemUpdated:
		p, err := kafkax.UnwrapPayload[orders.OrderItemEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderItemUpdated(ctx, p)
	case orders.EventOrderItemDeleted:
		p, err := kafkax.UnwrapPayload[orders.OrderItemEventPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.Reactor.OnOrderItemDeleted(ctx, p)
	}
	return nil // event lain di-ignore
}
