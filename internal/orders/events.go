package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced      = "OrderPlaced"
	EventOrderUpdated     = "OrderUpdated"
	EventOrderCanceled    = "OrderCanceled"
	EventOrderPreDelete   = "OrderPreDelete" // fired before hard delete; items still readable
	EventOrderItemUpdated = "OrderItemUpdated"
	EventOrderItemDeleted = "OrderItemDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "order-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

// OrderEventPayload carries the order after the mutation plus, when the host
// had one in flight, the pre-mutation snapshot. OriginalID is set when the
// order was re-keyed during save.
type OrderEventPayload struct {
	Order      Order  `json:"order"`
	Original   *Order `json:"original,omitempty"`
	OriginalID string `json:"original_id,omitempty"`
}

type OrderItemEventPayload struct {
	Item       OrderItem  `json:"item"`
	Original   *OrderItem `json:"original,omitempty"`
	OriginalID string     `json:"original_id,omitempty"`
}

// CartExpirationPayload is one work-queue batch: the expirable order items of
// a single source order.
type CartExpirationPayload struct {
	OrderID      string   `json:"order_id"`
	OrderItemIDs []string `json:"order_item_ids"`
}
