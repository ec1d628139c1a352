package db

import (
	"context"
	"fmt"
)

// schemaStatements creates the full table set. CREATE TABLE IF NOT EXISTS
// only; schema changes beyond that require manual migration.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		login_attempts INT NOT NULL DEFAULT 0,
		locked BOOLEAN NOT NULL DEFAULT FALSE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		national_id TEXT UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		tier TEXT NOT NULL DEFAULT 'Normal',
		credit_limit NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		contact_name TEXT NOT NULL DEFAULT '',
		contact_title TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Active',
		address TEXT NOT NULL DEFAULT '',
		tax_id TEXT NOT NULL DEFAULT '',
		business_type TEXT NOT NULL DEFAULT '',
		payment_terms TEXT NOT NULL DEFAULT '',
		credit_limit NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		rating INT NOT NULL DEFAULT 3,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(14,2) NOT NULL,
		cost NUMERIC(14,2) NOT NULL DEFAULT 0,
		stock INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 10,
		category_id BIGINT REFERENCES categories(id),
		supplier_id BIGINT REFERENCES suppliers(id),
		sku TEXT UNIQUE,
		barcode TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT 'Unit',
		tax_rate NUMERIC(6,4) NOT NULL DEFAULT 0.15,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS discounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT '',
		percentage NUMERIC(6,4) NOT NULL,
		min_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		valid_from DATE,
		valid_until DATE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		max_uses INT NOT NULL DEFAULT 0,
		used_count INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		date TIMESTAMPTZ NOT NULL,
		total NUMERIC(14,2) NOT NULL,
		subtotal NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax NUMERIC(14,2) NOT NULL DEFAULT 0,
		discount_total NUMERIC(14,2) NOT NULL DEFAULT 0,
		amount_paid NUMERIC(14,2) NOT NULL DEFAULT 0,
		change NUMERIC(14,2) NOT NULL DEFAULT 0,
		user_id BIGINT,
		client_id BIGINT REFERENCES clients(id),
		receipt_kind TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'completed',
		payment_method TEXT NOT NULL DEFAULT 'Cash',
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id BIGSERIAL PRIMARY KEY,
		sale_id TEXT REFERENCES sales(id),
		product_id BIGINT REFERENCES products(id),
		product_name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price NUMERIC(14,2) NOT NULL,
		discount NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax NUMERIC(14,2) NOT NULL DEFAULT 0,
		subtotal NUMERIC(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT REFERENCES products(id),
		kind TEXT NOT NULL,
		quantity INT NOT NULL,
		stock_before INT NOT NULL,
		stock_after INT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		reference TEXT NOT NULL DEFAULT '',
		user_id BIGINT,
		moved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id BIGSERIAL PRIMARY KEY,
		supplier_id BIGINT REFERENCES suppliers(id),
		order_number TEXT UNIQUE,
		order_date DATE,
		expected_date DATE,
		status TEXT NOT NULL DEFAULT 'Pending',
		subtotal NUMERIC(14,2) NOT NULL DEFAULT 0,
		tax NUMERIC(14,2) NOT NULL DEFAULT 0,
		total NUMERIC(14,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		user_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_items (
		id BIGSERIAL PRIMARY KEY,
		purchase_id BIGINT REFERENCES purchases(id),
		product_id BIGINT REFERENCES products(id),
		product_name TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL,
		unit_price NUMERIC(14,2) NOT NULL,
		subtotal NUMERIC(14,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'info',
		icon TEXT NOT NULL DEFAULT '',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		action_ref TEXT NOT NULL DEFAULT '',
		user_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		read_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT,
		action TEXT NOT NULL,
		module TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		logged_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS backups (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT NOT NULL,
		path TEXT NOT NULL,
		size BIGINT NOT NULL DEFAULT 0,
		user_id BIGINT,
		notes TEXT NOT NULL DEFAULT '',
		automatic BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS company (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		tax_id TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT 'HNL',
		language TEXT NOT NULL DEFAULT 'es',
		timezone TEXT NOT NULL DEFAULT 'America/Tegucigalpa',
		default_tax_rate NUMERIC(6,4) NOT NULL DEFAULT 0.15
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_series (
		id BIGSERIAL PRIMARY KEY,
		series TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		current_number INT NOT NULL DEFAULT 1,
		resolution TEXT NOT NULL DEFAULT '',
		resolution_date DATE,
		number_from INT NOT NULL DEFAULT 1,
		number_to INT NOT NULL DEFAULT 100000,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// InitSchema creates all tables if absent. Safe to run on every startup.
func (p *Postgres) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
