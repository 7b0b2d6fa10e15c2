package warehouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/stocklens/core/store"
	"github.com/stocklens/stocklens/core/warehouse"
)

func newTestHistory(t *testing.T) *warehouse.History {
	t.Helper()

	s, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, store.Setup(context.Background(), s))

	return warehouse.NewHistory(s)
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	id, err := h.Record(ctx, "show inventory", "SELECT msku, quantity FROM inventory", 12)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "show inventory", entries[0].Question)
	assert.Equal(t, "SELECT msku, quantity FROM inventory", entries[0].SQL)
	assert.Equal(t, 12, entries[0].RowCount)
	assert.NotEmpty(t, entries[0].AskedAt)
}

func TestHistory_RecentLimit(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := h.Record(ctx, "q", "SELECT 1", i)
		require.NoError(t, err)
	}

	entries, err := h.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Non-positive limit falls back to the default
	entries, err = h.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
