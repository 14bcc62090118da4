package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements Storage and PaymentLookup on Postgres. Every read here is
// a direct query, never a cache, so loads double as "unchanged" loads.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) OrderUnchanged(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, type, customer_id, store_id, cart, state, workflow_group, changed
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Type, &o.CustomerID, &o.StoreID, &o.Cart, &o.State, &o.WorkflowGroup, &o.Changed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, purchased_id, qty
		FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load order %s items: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.PurchasedID, &it.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

func (r *Repo) OrderItemUnchanged(ctx context.Context, id string) (*OrderItem, error) {
	var it OrderItem
	err := r.DB.QueryRow(ctx, `
		SELECT id, order_id, purchased_id, qty
		FROM order_items WHERE id=$1`, id).
		Scan(&it.ID, &it.OrderID, &it.PurchasedID, &it.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order item %s: %w", id, err)
	}
	return &it, nil
}

func (r *Repo) PurchasedEntity(ctx context.Context, id string) (*PurchasableEntity, error) {
	var p PurchasableEntity
	err := r.DB.QueryRow(ctx, `SELECT id, sku, label FROM purchasable_entities WHERE id=$1`, id).
		Scan(&p.ID, &p.SKU, &p.Label)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load purchasable %s: %w", id, err)
	}
	return &p, nil
}

// SaveOrder: update row order + buang item yang sudah dilepas dari order.
func (r *Repo) SaveOrder(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if o.Changed.IsZero() {
		o.Changed = time.Now().UTC()
	}
	ct, err := tx.Exec(ctx, `
		UPDATE orders SET cart=$2, state=$3, changed=$4 WHERE id=$1`,
		o.ID, o.Cart, o.State, o.Changed)
	if err != nil {
		return fmt.Errorf("save order %s: %w", o.ID, err)
	}
	if ct.RowsAffected() != 1 {
		return ErrNotFound
	}

	keep := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		keep = append(keep, it.ID)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM order_items WHERE order_id=$1 AND NOT (id = ANY($2))`,
		o.ID, keep); err != nil {
		return fmt.Errorf("detach items of order %s: %w", o.ID, err)
	}
	return tx.Commit(ctx)
}

func (r *Repo) DeleteOrder(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) DeleteOrderItem(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM order_items WHERE id=$1`, id)
	return err
}

func (r *Repo) OrderTypeIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT id FROM order_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repo) ExpiredCartIDs(ctx context.Context, orderType string, before time.Time, limit, offset int) ([]string, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id FROM orders
		WHERE type=$1 AND cart AND changed <= $2
		ORDER BY changed, id
		LIMIT $3 OFFSET $4`, orderType, before, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repo) CountPayments(ctx context.Context, orderID string) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE order_id=$1`, orderID).Scan(&n)
	return n, err
}
