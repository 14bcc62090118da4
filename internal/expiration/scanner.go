package expiration

import (
	"context"
	"errors"
	"time"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/ariefcatur/go-stock-reserve.git/internal/stock"
	"github.com/rs/zerolog/log"
)

const (
	// scanWindow is the fixed pre-filter: only carts untouched for at least
	// this long are even considered. Deliberately looser than the
	// user-configured interval the worker enforces, so queue/clock latency
	// cannot make the two stages disagree. Keep the stages separate.
	scanWindow = 2 * time.Hour

	pageSize = 100
)

// Scanner sweeps every order type for abandoned carts and queues their
// out-of-stock, stock-controlled items for removal.
type Scanner struct {
	Orders     orders.Storage
	Payments   orders.PaymentLookup
	Stock      stock.Checker
	Controlled stock.ControlledChecker
	Locations  stock.LocationResolver
	Settings   settings.Store
	Queue      Enqueuer
}

// Run executes one sweep. Dipanggil tiap tick scheduler.
func (s *Scanner) Run(ctx context.Context) error {
	cfg, err := s.Settings.Load(ctx)
	if err != nil {
		return err
	}
	if !cfg.CartExpirationEnabled {
		log.Debug().Msg("expiration: disabled, skipping sweep")
		return nil
	}

	locations, err := s.Locations.Locations(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().Add(-scanWindow)
	types, err := s.Orders.OrderTypeIDs(ctx)
	if err != nil {
		return err
	}

	for _, orderType := range types {
		for offset := 0; ; offset += pageSize {
			ids, err := s.Orders.ExpiredCartIDs(ctx, orderType, cutoff, pageSize, offset)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				break
			}
			for _, id := range ids {
				// satu order gagal tidak boleh menghentikan sweep
				if err := s.scanOrder(ctx, id, locations); err != nil {
					log.Error().Err(err).Str("order_id", id).Msg("expiration: scan order failed")
				}
			}
			if len(ids) < pageSize {
				break
			}
		}
	}
	return nil
}

// scanOrder collects the expirable items of one order and enqueues them as a
// single batch. Orders with payments never expire; items that are not stock
// controlled, always in stock, or still available anywhere are left alone.
func (s *Scanner) scanOrder(ctx context.Context, orderID string, locations []stock.Location) error {
	payments, err := s.Payments.CountPayments(ctx, orderID)
	if err != nil {
		return err
	}
	if payments > 0 {
		return nil
	}

	order, err := s.Orders.OrderUnchanged(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var itemIDs []string
	for _, item := range order.Items {
		entity, err := s.Orders.PurchasedEntity(ctx, item.PurchasedID)
		if errors.Is(err, orders.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		controlled, err := s.Controlled.IsStockControlled(ctx, entity)
		if err != nil {
			return err
		}
		if !controlled {
			continue
		}

		always, err := s.Stock.IsAlwaysInStock(ctx, entity)
		if err != nil {
			return err
		}
		if always {
			continue
		}

		// Only reclaim genuinely out-of-stock reservations; deleting items
		// just for being old hurts conversion of abandoned carts.
		inStock, err := s.Stock.IsInStock(ctx, entity, locations)
		if err != nil {
			return err
		}
		if inStock {
			continue
		}

		log.Debug().Str("order_item_id", item.ID).Str("label", entity.Label).
			Str("order_id", orderID).Msg("expiration: queueing removal of stocked item")
		itemIDs = append(itemIDs, item.ID)
	}

	if len(itemIDs) == 0 {
		return nil
	}
	return s.Queue.Enqueue(ctx, orderID, itemIDs)
}
