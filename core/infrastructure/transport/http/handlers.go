package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stocklens/stocklens/core/engine"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
	apperrors "github.com/stocklens/stocklens/core/shared/errors"
	"github.com/stocklens/stocklens/core/warehouse"
)

var handlerLog = logging.New("handler")

// queryRequest is the POST /query body
type queryRequest struct {
	Question string `json:"question"`
}

// queryResponse mirrors the engine result triple
type queryResponse struct {
	Question string            `json:"question"`
	SQL      string            `json:"sql"`
	Columns  []string          `json:"columns"`
	Rows     []map[string]any  `json:"rows"`
	RowCount int               `json:"row_count"`
	Viz      *engine.VizConfig `json:"visualization,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

// writeAppError picks the status from the error code when available
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.Status, appErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// handleQuery answers a natural language question
func handleQuery(eng *engine.Engine, history *warehouse.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlerLog.Errorf("Failed to parse JSON body: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			writeError(w, http.StatusBadRequest, "question is required")
			return
		}

		result := eng.ProcessQuery(r.Context(), req.Question)

		if result.SQL != "" && history != nil {
			if _, err := history.Record(r.Context(), req.Question, result.SQL, result.Rows.Len()); err != nil {
				handlerLog.Warnf("Failed to record query history: %v", err)
			}
		}

		rows := result.Rows.Rows
		if rows == nil {
			rows = []map[string]any{}
		}
		columns := result.Rows.Columns
		if columns == nil {
			columns = []string{}
		}

		writeJSON(w, http.StatusOK, queryResponse{
			Question: req.Question,
			SQL:      result.SQL,
			Columns:  columns,
			Rows:     rows,
			RowCount: result.Rows.Len(),
			Viz:      result.Viz,
		})
	}
}

// handleSchema returns the engine's catalog snapshot
func handleSchema(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := eng.Catalog()
		tables := make(map[string][]string, catalog.Len())
		for _, table := range catalog.Tables() {
			tables[table] = catalog.Columns(table)
		}
		writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
	}
}

// handleExamples returns suggested questions
func handleExamples(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"examples": eng.ExampleQueries()})
	}
}

// handleHistory returns recent queries, newest first
func handleHistory(history *warehouse.History) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		entries, err := history.Recent(r.Context(), limit)
		if err != nil {
			handlerLog.Errorf("Failed to load history: %v", err)
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": entries})
	}
}

func handleListMappings(mapper *warehouse.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mappings, err := mapper.AllMappings(r.Context())
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"mappings": mappings})
	}
}

func handleAddMapping(mapper *warehouse.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var mapping warehouse.Mapping
		if err := json.NewDecoder(r.Body).Decode(&mapping); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := mapper.AddMapping(r.Context(), mapping); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true})
	}
}

// handleResolveSKU resolves a marketplace SKU (or combo) to its MSKU
func handleResolveSKU(mapper *warehouse.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := chi.URLParam(r, "sku")

		msku, err := mapper.GetMSKU(r.Context(), sku)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"sku":         sku,
			"msku":        msku,
			"marketplace": mapper.IdentifyMarketplace(sku),
		})
	}
}

func handleDeleteMapping(mapper *warehouse.Mapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mapper.DeleteMapping(r.Context(), chi.URLParam(r, "sku")); err != nil {
			writeAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleHeartbeat is the health check endpoint
func handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
