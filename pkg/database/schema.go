package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		seq BIGSERIAL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('customer', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		seq BIGSERIAL UNIQUE,
		title TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		images TEXT[] NOT NULL DEFAULT '{}',
		category TEXT NOT NULL DEFAULT '',
		demographic TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		sizes TEXT[] NOT NULL DEFAULT '{}',
		colors TEXT[] NOT NULL DEFAULT '{}',
		specifications TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		seq BIGSERIAL UNIQUE,
		title TEXT NOT NULL,
		demographic TEXT NOT NULL DEFAULT '',
		route TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sliders (
		id UUID PRIMARY KEY,
		seq BIGSERIAL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS headings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		subtitle TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		navbar_title TEXT NOT NULL DEFAULT '',
		display JSONB NOT NULL DEFAULT '{}',
		about_us TEXT NOT NULL DEFAULT '',
		terms TEXT NOT NULL DEFAULT '',
		contact JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		seq BIGSERIAL UNIQUE,
		items JSONB NOT NULL,
		delivery_name TEXT NOT NULL DEFAULT '',
		delivery_email TEXT NOT NULL,
		delivery_phone TEXT NOT NULL DEFAULT '',
		delivery_address TEXT NOT NULL DEFAULT '',
		transaction_id TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		total NUMERIC(12,2) NOT NULL CHECK (total >= 0),
		placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_delivery_email ON orders (delivery_email)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
}

// EnsureSchema creates the tables when missing. Safe to run on every boot.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
