package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Statements mirror 000001_init.up.sql for the three order tables.
var recreateOrderTables = []string{
	`DROP TABLE IF EXISTS order_status_history`,
	`DROP TABLE IF EXISTS order_items`,
	`DROP TABLE IF EXISTS orders`,
	`CREATE TABLE orders (
		id             BIGSERIAL PRIMARY KEY,
		reference      UUID          NOT NULL UNIQUE,
		user_id        BIGINT        NOT NULL REFERENCES users (id),
		total_amount   NUMERIC(10,2) NOT NULL CHECK (total_amount >= 0),
		status         TEXT          NOT NULL DEFAULT 'pending',
		payment_status TEXT          NOT NULL DEFAULT 'pending',
		created_at     TIMESTAMPTZ   NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX idx_orders_user_id ON orders (user_id)`,
	`CREATE INDEX idx_orders_status ON orders (status)`,
	`CREATE TABLE order_items (
		id           BIGSERIAL PRIMARY KEY,
		order_id     BIGINT        NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		package_id   TEXT          NOT NULL,
		quantity     INTEGER       NOT NULL CHECK (quantity >= 1),
		price        NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		service_type TEXT          NOT NULL DEFAULT '',
		service_id   TEXT          NOT NULL DEFAULT '',
		service_url  TEXT,
		created_at   TIMESTAMPTZ   NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX idx_order_items_order_id ON order_items (order_id)`,
	`CREATE TABLE order_status_history (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT      NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		status     TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX idx_order_status_history_order_id ON order_status_history (order_id)`,
}

// RecreateOrderTables drops and recreates the orders, order_items and
// order_status_history tables. Destructive; exposed only behind the admin
// debug surface.
func RecreateOrderTables(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin recreate transaction")
	}
	defer tx.Rollback()

	for _, stmt := range recreateOrderTables {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "recreate order tables")
		}
	}

	return errors.Wrap(tx.Commit(), "commit recreate transaction")
}
