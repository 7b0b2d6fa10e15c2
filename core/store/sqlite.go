package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/stocklens/stocklens/core/shared/errors"
)

// SQLiteStore implements the Store interface on an embedded SQLite file.
// This is the default backing store for the warehouse database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite database at the given path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "data/wms_database.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectionFailed,
			"failed to open sqlite database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.WrapError(apperrors.ErrCodeConnectionFailed,
			"failed to ping sqlite database", err)
	}

	// SQLite serializes writes internally; a single connection avoids
	// SQLITE_BUSY under concurrent callers.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db}, nil
}

// Tables lists all user tables, excluding SQLite internals
func (s *SQLiteStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
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
func (s *SQLiteStore) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read table info for '%s': %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// Query executes a SQL statement and returns a tabular result
func (s *SQLiteStore) Query(ctx context.Context, statement string, args ...any) (*Result, error) {
	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Exec executes a statement that returns no rows
func (s *SQLiteStore) Exec(ctx context.Context, statement string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, statement, args...); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
