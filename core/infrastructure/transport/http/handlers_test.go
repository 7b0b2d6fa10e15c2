package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/stocklens/core/engine"
	transport "github.com/stocklens/stocklens/core/infrastructure/transport/http"
	"github.com/stocklens/stocklens/core/store"
	"github.com/stocklens/stocklens/core/warehouse"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	s, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, store.Setup(ctx, s))

	eng := engine.New(ctx, s)
	mapper := warehouse.NewMapper(s)
	history := warehouse.NewHistory(s)

	require.NoError(t, mapper.AddMapping(ctx, warehouse.Mapping{
		SKU: "AMZ_AXL_BLU", MSKU: "CSTE_0322_ST_Axolotl_Blue",
	}))

	srv := transport.NewServer(0)
	transport.RegisterRoutes(srv.Router(), eng, mapper, history)
	return srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuery(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/query", map[string]string{
		"question": "Show me the current inventory levels",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Question string           `json:"question"`
		SQL      string           `json:"sql"`
		Rows     []map[string]any `json:"rows"`
		Viz      *struct {
			Type string `json:"type"`
		} `json:"visualization"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Contains(t, resp.SQL, "FROM inventory")
	assert.NotNil(t, resp.Rows)
	require.NotNil(t, resp.Viz)
	assert.Equal(t, "bar", resp.Viz.Type)
}

func TestHandleQuery_RecordsHistory(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/query", map[string]string{
		"question": "show sales by marketplace",
	})

	rec := doJSON(t, router, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		History []struct {
			Question string `json:"question"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.History, 1)
	assert.Equal(t, "show sales by marketplace", resp.History[0].Question)
}

func TestHandleQuery_BlankQuestion(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/query", map[string]string{"question": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuery_InvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSchema(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/schema", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tables map[string][]string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Contains(t, resp.Tables, "orders")
	assert.Contains(t, resp.Tables["orders"], "marketplace")
}

func TestHandleExamples(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/examples", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Examples []string `json:"examples"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Examples)
}

func TestMappingRoutes(t *testing.T) {
	router := newTestRouter(t)

	// Resolve the seeded SKU
	rec := doJSON(t, router, http.MethodGet, "/mappings/AMZ_AXL_BLU", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resolved struct {
		MSKU        string `json:"msku"`
		Marketplace string `json:"marketplace"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolved))
	assert.Equal(t, "CSTE_0322_ST_Axolotl_Blue", resolved.MSKU)
	assert.Equal(t, "amazon", resolved.Marketplace)

	// Unknown SKU is a 404
	rec = doJSON(t, router, http.MethodGet, "/mappings/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Add then delete
	rec = doJSON(t, router, http.MethodPost, "/mappings", warehouse.Mapping{
		SKU: "FK_NEW", MSKU: "M_NEW",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/mappings/FK_NEW", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAddMapping_Invalid(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/mappings", warehouse.Mapping{SKU: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHeartbeat(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/heartbeat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
