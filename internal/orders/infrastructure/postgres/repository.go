package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/services/internal/orders/application"
	"github.com/shopcore/services/internal/orders/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// EnsureSchema creates the orders tables and the outbox if they do not
// exist yet. Run once at startup.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id          BIGSERIAL PRIMARY KEY,
			user_id     BIGINT NOT NULL,
			status      TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL,
			street      TEXT NOT NULL,
			city        TEXT NOT NULL,
			state       TEXT NOT NULL,
			postal_code TEXT NOT NULL,
			country     TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			id         BIGSERIAL PRIMARY KEY,
			order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			quantity   INT NOT NULL CHECK (quantity > 0)
		);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC);
		CREATE TABLE IF NOT EXISTS outbox (
			id             BIGSERIAL PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id   TEXT NOT NULL,
			type           TEXT NOT NULL,
			payload        BYTEA NOT NULL,
			traceparent    TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL DEFAULT 'pending',
			relay_id       TEXT,
			lease_until    TIMESTAMPTZ,
			retry_count    INT NOT NULL DEFAULT 0,
			last_error     TEXT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

// SaveWithOutbox writes the order, its items and an OrderConfirmed outbox
// row in one transaction. The order comes back with its assigned id.
func (r *Repository) SaveWithOutbox(ctx context.Context, o domain.Order, traceparent string) (domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, status, created_at, updated_at, street, city, state, postal_code, country)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		o.UserID, o.Status, o.CreatedAt, o.UpdatedAt,
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
	).Scan(&o.ID)
	if err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1,$2,$3)`,
			o.ID, item.ProductID, item.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}

	payload, err := json.Marshal(domain.OrderConfirmed{OrderID: o.ID, UserID: o.UserID, Items: o.Items})
	if err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent, status)
		VALUES ('order', $1, $2, $3, $4, 'pending')`,
		formatID(o.ID), domain.EventTypeOrderConfirmed, payload, traceparent)
	if err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}
	return o, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, status, created_at, updated_at, street, city, state, postal_code, country
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
			&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, application.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, &application.PersistenceError{Err: err}
	}

	items, err := r.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// ListByUser returns the user's orders newest first, each with its items.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, status, created_at, updated_at, street, city, state, postal_code, country
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, status, created_at, updated_at, street, city, state, postal_code, country
		FROM orders
		ORDER BY created_at DESC, id DESC`)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &application.PersistenceError{Err: err}
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
			&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country); err != nil {
			return nil, &application.PersistenceError{Err: err}
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if rows.Err() != nil {
		return nil, &application.PersistenceError{Err: rows.Err()}
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// loadItems fetches items for a set of orders in one query so an order is
// never returned without the items committed with it.
func (r *Repository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, quantity
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY id`, orderIDs)
	if err != nil {
		return nil, &application.PersistenceError{Err: err}
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, &application.PersistenceError{Err: err}
		}
		items[orderID] = append(items[orderID], item)
	}
	if rows.Err() != nil {
		return nil, &application.PersistenceError{Err: rows.Err()}
	}
	return items, nil
}
