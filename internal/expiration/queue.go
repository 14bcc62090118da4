// Package expiration reclaims reservations held by abandoned carts: a
// periodic scanner queues out-of-stock cart items, a worker re-validates and
// removes them. Both sides tolerate the queue's at-least-once delivery.
package expiration

import (
	"context"
	"time"

	kafkax "github.com/ariefcatur/go-stock-reserve.git/internal/kafka"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// EventCartExpiration marks a cart.expiration envelope.
const EventCartExpiration = "CartExpiration"

// Enqueuer hands one batch of expirable order-item ids (all from the same
// order) to the work queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, orderID string, orderItemIDs []string) error
}

// KafkaQueue publishes batches to the cart.expiration topic, envelope style,
// partitioned by source order id.
type KafkaQueue struct {
	Producer    *kafkax.Producer
	ServiceName string
}

func (q *KafkaQueue) Enqueue(ctx context.Context, orderID string, orderItemIDs []string) error {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventCartExpiration,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      q.ServiceName,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(orders.CartExpirationPayload{
			OrderID:      orderID,
			OrderItemIDs: orderItemIDs,
		}),
	}
	q.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventCartExpiration)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}
