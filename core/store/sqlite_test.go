package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/stocklens/core/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, store.Setup(context.Background(), s))
	return s
}

func TestSetup_CreatesWarehouseTables(t *testing.T) {
	s := newTestStore(t)

	tables, err := s.Tables(context.Background())
	require.NoError(t, err)

	expected := []string{
		"inventory", "inventory_transactions", "locations", "marketplaces",
		"order_items", "orders", "products", "query_history", "sku_mappings",
	}
	for _, table := range expected {
		assert.Contains(t, tables, table)
	}
	// sqlite internals must not leak into the catalog
	assert.NotContains(t, tables, "sqlite_sequence")
}

func TestColumns_DeclarationOrder(t *testing.T) {
	s := newTestStore(t)

	columns, err := s.Columns(context.Background(), "orders")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"order_id", "marketplace", "order_date", "customer_name",
		"customer_state", "status", "created_at",
	}, columns)
}

func TestQuery_ReturnsNamedColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Exec(ctx,
		`INSERT INTO inventory (msku, quantity, location) VALUES (?, ?, ?)`,
		"CSTE_0322_ST_Axolotl_Blue", 42, "OWN1"))

	result, err := s.Query(ctx, "SELECT msku, quantity FROM inventory ORDER BY quantity DESC")
	require.NoError(t, err)

	assert.Equal(t, []string{"msku", "quantity"}, result.Columns)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "CSTE_0322_ST_Axolotl_Blue", result.Rows[0]["msku"])
	assert.EqualValues(t, 42, result.Rows[0]["quantity"])
}

func TestQuery_SeededMarketplaces(t *testing.T) {
	s := newTestStore(t)

	result, err := s.Query(context.Background(), "SELECT name FROM marketplaces ORDER BY name")
	require.NoError(t, err)

	var names []string
	for _, row := range result.Rows {
		names = append(names, row["name"].(string))
	}
	assert.Equal(t, []string{"amazon", "flipkart", "meesho", "unknown"}, names)
}

func TestQuery_FailsOnBadSQL(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Query(context.Background(), "SELECT nope FROM does_not_exist")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := store.Open("oracle", "dsn")
	assert.Error(t, err)
}
