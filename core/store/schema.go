package store

import (
	"context"
	"fmt"

	"github.com/stocklens/stocklens/core/infrastructure/logging"
)

// warehouseTables holds the DDL for the warehouse database, in dependency
// order. SQLite dialect; the statements also run unchanged on MySQL and
// Postgres installations that predate the dashboard.
var warehouseTables = []string{
	`CREATE TABLE IF NOT EXISTS products (
		msku TEXT PRIMARY KEY,
		name TEXT,
		description TEXT,
		category TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sku_mappings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sku TEXT UNIQUE,
		msku TEXT,
		marketplace TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (msku) REFERENCES products (msku)
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		msku TEXT,
		quantity INTEGER,
		location TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (msku) REFERENCES products (msku)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		marketplace TEXT,
		order_date TIMESTAMP,
		customer_name TEXT,
		customer_state TEXT,
		status TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT,
		msku TEXT,
		sku TEXT,
		quantity INTEGER,
		price REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders (order_id),
		FOREIGN KEY (msku) REFERENCES products (msku)
	)`,
	`CREATE TABLE IF NOT EXISTS marketplaces (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		address TEXT,
		city TEXT,
		state TEXT,
		country TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		msku TEXT NOT NULL,
		quantity_change INTEGER NOT NULL,
		transaction_type TEXT NOT NULL,
		reference_id TEXT,
		location_id INTEGER,
		notes TEXT,
		transaction_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (msku) REFERENCES products (msku)
	)`,
	`CREATE TABLE IF NOT EXISTS query_history (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		sql_text TEXT,
		row_count INTEGER,
		asked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// seedStatements inserts reference rows for marketplaces and warehouse
// locations so a fresh database is immediately queryable.
var seedStatements = []string{
	`INSERT OR IGNORE INTO marketplaces (name, description) VALUES
		('amazon', 'Amazon India'),
		('flipkart', 'Flipkart'),
		('meesho', 'Meesho'),
		('unknown', 'Unknown Marketplace')`,
	`INSERT OR IGNORE INTO locations (name, code, country) VALUES
		('Amazon Fulfillment Center Mumbai', 'BOM7', 'IN'),
		('Flipkart Warehouse Delhi', 'DEL1', 'IN'),
		('Own Warehouse', 'OWN1', 'IN')`,
}

// Setup creates the warehouse tables and seed rows if they do not exist
func Setup(ctx context.Context, s Store) error {
	log := logging.New("store:setup")

	for _, ddl := range warehouseTables {
		if err := s.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range seedStatements {
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	log.Infof("Warehouse schema ready (%d tables)", len(warehouseTables))
	return nil
}
