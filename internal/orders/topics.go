package orders

const (
	// Semua lifecycle event order & order item lewat satu topic;
	// EventType di envelope yang membedakan.
	TopicOrderLifecycle = "order.lifecycle"

	// Work queue untuk cart expiration (batch order-item ids per order).
	TopicCartExpiration = "cart.expiration"
)

// Partition key = order_id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
