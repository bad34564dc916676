package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas y secuencias si no existen.
// Idempotente: se ejecuta en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			item_type TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			min_stock_level INTEGER NOT NULL DEFAULT 0,
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			sku TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			supplier TEXT NOT NULL DEFAULT '',
			expiration_date DATE,
			batch_number TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT now(),
			updated_at TIMESTAMP NOT NULL DEFAULT now()
		)`,
		`CREATE SEQUENCE IF NOT EXISTS items_batch_seq START 1`,
		`CREATE TABLE IF NOT EXISTS receipts (
			id UUID PRIMARY KEY,
			seq BIGINT GENERATED ALWAYS AS IDENTITY,
			item_id UUID NOT NULL,
			sku TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			previous_quantity INTEGER NOT NULL,
			new_quantity INTEGER NOT NULL,
			received_at TIMESTAMP NOT NULL DEFAULT now(),
			created_at TIMESTAMP NOT NULL DEFAULT now(),
			received_by TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_received_at ON receipts (received_at DESC, seq DESC)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY,
			number TEXT NOT NULL,
			printed_at TIMESTAMP NOT NULL DEFAULT now(),
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			discount_rate NUMERIC(8,2) NOT NULL DEFAULT 0,
			tax_rate NUMERIC(8,2) NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT now(),
			updated_at TIMESTAMP NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_printed_at ON invoices (printed_at DESC)`,
		`CREATE TABLE IF NOT EXISTS invoice_lines (
			id UUID PRIMARY KEY,
			invoice_id UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			item_id UUID,
			name TEXT NOT NULL DEFAULT '',
			sku TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			quantity INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines (invoice_id, position)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'saler',
			created_at TIMESTAMP NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
