package reserve

import (
	"context"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/rs/zerolog/log"
)

// LogNotifier writes the cart-expiry notice to the log. The storefront picks
// it up via its own messenger; this side only needs a record of it.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, order *orders.Order, message string) {
	log.Info().Str("order_id", order.ID).Str("customer_id", order.CustomerID).
		Str("notice", message).Msg("cart expiry notice")
}
