package engine

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/stocklens/stocklens/core/shared/errors"
	"github.com/stocklens/stocklens/core/store"
)

// Catalog is a snapshot of the store's schema: table names mapped to their
// columns in declaration order. It is built once per engine instance and
// never refreshed automatically; it is immutable after construction and
// safe to share across concurrent readers.
type Catalog struct {
	tables  []string
	columns map[string][]string
}

// BuildCatalog introspects the store and returns a schema snapshot.
// Returns a SCHEMA_UNAVAILABLE error when the store cannot be reached;
// callers are expected to fall back to an empty catalog.
func BuildCatalog(ctx context.Context, s store.Store) (*Catalog, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrCodeSchemaUnavailable,
			"failed to list tables", err)
	}

	c := &Catalog{columns: make(map[string][]string, len(tables))}
	for _, table := range tables {
		cols, err := s.Columns(ctx, table)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrCodeSchemaUnavailable,
				fmt.Sprintf("failed to list columns for '%s'", table), err)
		}
		c.tables = append(c.tables, table)
		c.columns[table] = cols
	}

	return c, nil
}

// NewCatalog builds a catalog from a literal table map, for tests and for
// callers that already hold a schema. Tables iterate in the given order.
func NewCatalog(tables []string, columns map[string][]string) *Catalog {
	c := &Catalog{columns: make(map[string][]string, len(tables))}
	for _, table := range tables {
		c.tables = append(c.tables, table)
		c.columns[table] = columns[table]
	}
	return c
}

// EmptyCatalog returns a catalog with no tables, used for degraded mode
// when the store is unreachable at startup.
func EmptyCatalog() *Catalog {
	return &Catalog{columns: map[string][]string{}}
}

// Tables returns the table names in a stable order
func (c *Catalog) Tables() []string {
	return c.tables
}

// Columns returns the columns of a table in declaration order
func (c *Catalog) Columns(table string) []string {
	return c.columns[table]
}

// Has reports whether the catalog knows the table
func (c *Catalog) Has(table string) bool {
	_, ok := c.columns[table]
	return ok
}

// HasColumn reports whether the table has the named column
func (c *Catalog) HasColumn(table, column string) bool {
	for _, col := range c.columns[table] {
		if col == column {
			return true
		}
	}
	return false
}

// Len returns the number of tables in the catalog
func (c *Catalog) Len() int {
	return len(c.tables)
}

// Render returns a textual description of the schema, one line per table,
// suitable for inclusion in a translator prompt.
func (c *Catalog) Render() string {
	var b strings.Builder
	for _, table := range c.tables {
		b.WriteString("Table: ")
		b.WriteString(table)
		b.WriteString("\nColumns: ")
		b.WriteString(strings.Join(c.columns[table], ", "))
		b.WriteString("\n\n")
	}
	return b.String()
}
