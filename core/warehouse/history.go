package warehouse

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stocklens/stocklens/core/store"
)

// HistoryEntry is one asked question with the SQL it produced
type HistoryEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	SQL      string `json:"sql"`
	RowCount int    `json:"row_count"`
	AskedAt  string `json:"asked_at"`
}

// History persists the dashboard's query log
type History struct {
	store store.Store
}

// NewHistory creates a history log over the store
func NewHistory(s store.Store) *History {
	return &History{store: s}
}

// Record stores an answered question and returns its id
func (h *History) Record(ctx context.Context, question, sql string, rowCount int) (string, error) {
	id := uuid.NewString()
	err := h.store.Exec(ctx,
		"INSERT INTO query_history (id, question, sql_text, row_count) VALUES (?, ?, ?, ?)",
		id, question, sql, rowCount)
	if err != nil {
		return "", fmt.Errorf("failed to record query: %w", err)
	}
	return id, nil
}

// Recent returns the latest entries, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	result, err := h.store.Query(ctx,
		"SELECT id, question, sql_text, row_count, asked_at FROM query_history ORDER BY asked_at DESC, id LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load query history: %w", err)
	}

	entries := make([]HistoryEntry, 0, result.Len())
	for _, row := range result.Rows {
		entry := HistoryEntry{}
		entry.ID, _ = row["id"].(string)
		entry.Question, _ = row["question"].(string)
		entry.SQL, _ = row["sql_text"].(string)
		if n, ok := row["row_count"].(int64); ok {
			entry.RowCount = int(n)
		}
		entry.AskedAt = fmt.Sprint(row["asked_at"])
		entries = append(entries, entry)
	}
	return entries, nil
}
