package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the stock collaborators on the local Postgres stock store:
// checker flags from purchasable_entities, levels from stock_location_levels,
// the ledger in stock_transactions.
type Repo struct{ DB *pgxpool.Pool }

var ErrNoLocation = errors.New("stock: no active stock location")

func (r *Repo) IsStockControlled(ctx context.Context, entity *orders.PurchasableEntity) (bool, error) {
	var controlled bool
	err := r.DB.QueryRow(ctx,
		`SELECT stock_controlled FROM purchasable_entities WHERE id=$1`, entity.ID).Scan(&controlled)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return controlled, err
}

func (r *Repo) IsAlwaysInStock(ctx context.Context, entity *orders.PurchasableEntity) (bool, error) {
	var always bool
	err := r.DB.QueryRow(ctx,
		`SELECT always_in_stock FROM purchasable_entities WHERE id=$1`, entity.ID).Scan(&always)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return always, err
}

func (r *Repo) IsInStock(ctx context.Context, entity *orders.PurchasableEntity, locations []Location) (bool, error) {
	ids := make([]string, 0, len(locations))
	for _, l := range locations {
		ids = append(ids, l.ID)
	}
	var total int
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(qty), 0) FROM stock_location_levels
		WHERE entity_id=$1 AND location_id = ANY($2)`, entity.ID, ids).Scan(&total)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *Repo) Locations(ctx context.Context) ([]Location, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM stock_locations WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// TransactionLocation: lokasi aktif pertama. Cukup untuk single-warehouse;
// resolver lain bisa dipasang lewat interface kalau multi-gudang.
func (r *Repo) TransactionLocation(ctx context.Context, cc Context, entity *orders.PurchasableEntity, quantity int) (Location, error) {
	var l Location
	err := r.DB.QueryRow(ctx,
		`SELECT id, name FROM stock_locations WHERE active ORDER BY id LIMIT 1`).Scan(&l.ID, &l.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, ErrNoLocation
	}
	return l, err
}

// Record: lock level per (entity, location) -> apply signed qty -> append ke
// ledger. Satu transaction DB supaya level dan ledger tidak bisa berpisah.
func (r *Repo) Record(ctx context.Context, txn Transaction) (string, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var qty int
	err = tx.QueryRow(ctx, `
		SELECT qty FROM stock_location_levels
		WHERE entity_id=$1 AND location_id=$2 FOR UPDATE`,
		txn.EntityID, txn.LocationID).Scan(&qty)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
			INSERT INTO stock_location_levels(entity_id, location_id, qty)
			VALUES ($1, $2, $3)
			ON CONFLICT (entity_id, location_id) DO UPDATE SET qty = stock_location_levels.qty + $3`,
			txn.EntityID, txn.LocationID, txn.Quantity); err != nil {
			return "", fmt.Errorf("init level: %w", err)
		}
	case err != nil:
		return "", err
	default:
		if _, err := tx.Exec(ctx, `
			UPDATE stock_location_levels SET qty = qty + $3
			WHERE entity_id=$1 AND location_id=$2`,
			txn.EntityID, txn.LocationID, txn.Quantity); err != nil {
			return "", fmt.Errorf("apply level: %w", err)
		}
	}

	id := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_transactions(id, entity_id, qty, location_id, type, event_type,
		                               related_order_id, related_customer_id, message)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		id, txn.EntityID, txn.Quantity, txn.LocationID, txn.Type, txn.EventType,
		txn.Metadata.RelatedOrderID, txn.Metadata.RelatedCustomerID, txn.Metadata.Message); err != nil {
		return "", fmt.Errorf("append ledger: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}
