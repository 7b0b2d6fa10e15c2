package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	apperrors "github.com/stocklens/stocklens/core/shared/errors"
)

// PostgresStore implements the Store interface for PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool to a PostgreSQL database
func OpenPostgres(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectionFailed,
			"failed to open postgres connection", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectionFailed,
			"failed to ping postgres database", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return &PostgresStore{db: db}, nil
}

// Tables lists all tables in the public schema
func (p *PostgresStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		 ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns lists the columns of a table in declaration order
func (p *PostgresStore) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1
		 ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns for '%s': %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// Query executes a SQL statement and returns a tabular result
func (p *PostgresStore) Query(ctx context.Context, statement string, args ...any) (*Result, error) {
	rows, err := p.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Exec executes a statement that returns no rows
func (p *PostgresStore) Exec(ctx context.Context, statement string, args ...any) error {
	if _, err := p.db.ExecContext(ctx, statement, args...); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Close closes the database connection
func (p *PostgresStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
