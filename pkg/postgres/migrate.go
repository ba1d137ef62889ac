package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email      TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		price_amount   BIGINT NOT NULL CHECK (price_amount >= 0),
		currency       TEXT NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS carts (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL,
		status     TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS carts_one_active_per_user ON carts (user_id) WHERE status = 'ACTIVE'`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		cart_id    UUID NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
		product_id UUID NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (cart_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id      UUID NOT NULL,
		status       TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'shipped', 'delivered', 'cancelled')),
		currency     TEXT NOT NULL,
		total_amount BIGINT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_created_idx ON orders (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id          UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		position          INTEGER NOT NULL,
		product_id        UUID NOT NULL,
		name              TEXT NOT NULL,
		unit_amount       BIGINT NOT NULL,
		quantity          INTEGER NOT NULL CHECK (quantity >= 1),
		line_total_amount BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id, position)`,
}

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
