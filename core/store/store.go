package store

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "github.com/stocklens/stocklens/core/shared/errors"
)

// Result is a tabular query result with named columns. Columns preserves
// the order the store returned them in; each row maps column name to value.
type Result struct {
	Columns []string
	Rows    []map[string]any
}

// Len returns the number of rows in the result
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Store defines the interface for the backing relational store.
// The query engine depends on exactly three operations: table listing,
// column listing per table, and SQL execution returning a tabular result.
type Store interface {
	// Tables lists all user tables in the store
	Tables(ctx context.Context) ([]string, error)

	// Columns lists the columns of a table in declaration order
	Columns(ctx context.Context, table string) ([]string, error)

	// Query executes a SQL statement and returns a tabular result
	Query(ctx context.Context, statement string, args ...any) (*Result, error)

	// Exec executes a statement that returns no rows
	Exec(ctx context.Context, statement string, args ...any) error

	// Close closes the store and releases resources
	Close() error
}

// Open creates a store for the configured driver
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "sqlite3", "":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	case "mysql":
		return OpenMySQL(dsn)
	default:
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("unsupported store driver '%s'", driver), nil)
	}
}

// scanRows converts sql.Rows into a Result. Each row is scanned into a
// column-name keyed map; []byte values become strings so results serialize
// cleanly to JSON.
func scanRows(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				rowMap[col] = string(b)
			} else {
				rowMap[col] = val
			}
		}
		result.Rows = append(result.Rows, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
