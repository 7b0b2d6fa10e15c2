package warehouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stocklens/stocklens/core/shared/errors"
	"github.com/stocklens/stocklens/core/store"
	"github.com/stocklens/stocklens/core/warehouse"
)

func newTestMapper(t *testing.T) (*warehouse.Mapper, store.Store) {
	t.Helper()

	s, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, store.Setup(context.Background(), s))

	return warehouse.NewMapper(s), s
}

func seedMappings(t *testing.T, m *warehouse.Mapper) {
	t.Helper()
	ctx := context.Background()

	for _, mapping := range []warehouse.Mapping{
		{SKU: "AMZ_AXL_BLU", MSKU: "CSTE_0322_ST_Axolotl_Blue", Marketplace: "amazon"},
		{SKU: "FK_AXL_BLU", MSKU: "CSTE_0322_ST_Axolotl_Blue", Marketplace: "flipkart"},
		{SKU: "AMZ_PNDA_GRN", MSKU: "CSTE_0410_ST_Panda_Green", Marketplace: "amazon"},
	} {
		require.NoError(t, m.AddMapping(ctx, mapping))
	}
}

func TestMapper_GetMSKU(t *testing.T) {
	m, _ := newTestMapper(t)
	seedMappings(t, m)

	msku, err := m.GetMSKU(context.Background(), "AMZ_AXL_BLU")
	require.NoError(t, err)
	assert.Equal(t, "CSTE_0322_ST_Axolotl_Blue", msku)
}

func TestMapper_GetMSKU_NotFound(t *testing.T) {
	m, _ := newTestMapper(t)

	_, err := m.GetMSKU(context.Background(), "UNKNOWN_SKU")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMapper_ComboSKU(t *testing.T) {
	m, _ := newTestMapper(t)
	seedMappings(t, m)

	msku, err := m.GetMSKU(context.Background(), "AMZ_AXL_BLU+AMZ_PNDA_GRN")
	require.NoError(t, err)
	assert.Equal(t, "CSTE_0322_ST_Axolotl_Blue+CSTE_0410_ST_Panda_Green", msku)
}

func TestMapper_ComboSKU_PartialFails(t *testing.T) {
	m, _ := newTestMapper(t)
	seedMappings(t, m)

	// One unmapped part fails the whole combo
	_, err := m.GetMSKU(context.Background(), "AMZ_AXL_BLU+MISSING")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMapper_AddMapping_Validation(t *testing.T) {
	m, _ := newTestMapper(t)

	err := m.AddMapping(context.Background(), warehouse.Mapping{SKU: "", MSKU: "X"})
	assert.Error(t, err)
}

func TestMapper_AddMapping_InfersMarketplace(t *testing.T) {
	m, _ := newTestMapper(t)
	ctx := context.Background()

	require.NoError(t, m.AddMapping(ctx, warehouse.Mapping{SKU: "FK_SOMETHING", MSKU: "M1"}))

	mappings, err := m.SKUsForMSKU(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, "flipkart", mappings[0].Marketplace)
}

func TestMapper_DeleteMapping(t *testing.T) {
	m, _ := newTestMapper(t)
	seedMappings(t, m)
	ctx := context.Background()

	require.NoError(t, m.DeleteMapping(ctx, "AMZ_AXL_BLU"))

	_, err := m.GetMSKU(ctx, "AMZ_AXL_BLU")
	assert.Error(t, err)
}

func TestMapper_AllMappings(t *testing.T) {
	m, _ := newTestMapper(t)
	seedMappings(t, m)

	mappings, err := m.AllMappings(context.Background())
	require.NoError(t, err)
	assert.Len(t, mappings, 3)
}

func TestMapper_IdentifyMarketplace(t *testing.T) {
	m, _ := newTestMapper(t)

	tests := []struct {
		sku      string
		expected string
	}{
		{"AMZ_123", "amazon"},
		{"B0ABCD1234", "amazon"},
		{"FK_123", "flipkart"},
		{"MSH_99", "meesho"},
		{"XYZ", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, m.IdentifyMarketplace(tt.sku), tt.sku)
	}
}
