package engine

import (
	"strings"

	"github.com/stocklens/stocklens/core/store"
)

// VizType identifies a chart type the dashboard can render
type VizType string

const (
	VizTable      VizType = "table"
	VizBar        VizType = "bar"
	VizLine       VizType = "line"
	VizPie        VizType = "pie"
	VizChoropleth VizType = "choropleth"
)

// VizConfig is a chart-type recommendation with axis bindings. Which
// fields are populated depends on Type: bar/line use X/Y, pie uses
// Names/Values, choropleth uses Locations/Values, table uses none.
type VizConfig struct {
	Type      VizType `json:"type"`
	X         string  `json:"x,omitempty"`
	Y         string  `json:"y,omitempty"`
	Names     string  `json:"names,omitempty"`
	Values    string  `json:"values,omitempty"`
	Locations string  `json:"locations,omitempty"`
}

// ColumnRef is a column detected in the question, qualified by the table
// it belongs to in the schema catalog.
type ColumnRef struct {
	Table  string
	Column string
}

// Aggregation is an aggregate function applied to a column. Column is "*"
// for the COUNT star form.
type Aggregation struct {
	Function string // COUNT, SUM or AVG
	Column   string
}

// OutputName returns the alias the query builder assigns to this
// aggregation. The visualization selector binds axes by this exact string.
func (a Aggregation) OutputName() string {
	if a.Column == "*" {
		return "count"
	}
	return strings.ToLower(a.Function) + "_" + a.Column
}

// Entities holds everything extracted from a question. Tables keeps first
// match order and may contain duplicates; consumers dedupe. Entities are
// transient, built and consumed within a single ProcessQuery call.
type Entities struct {
	Tables         []string
	Columns        []ColumnRef
	Aggregations   []Aggregation
	Filters        []string
	Limit          int // 0 means no limit detected
	OrderBy        string
	OrderDirection string // ASC or DESC, default DESC
}

// Result is the uniform outcome of processing one question. On total
// failure SQL is empty and Rows is an empty table; that is the canonical
// "no result" value, never an error.
type Result struct {
	SQL  string        `json:"sql"`
	Rows *store.Result `json:"rows"`
	Viz  *VizConfig    `json:"viz,omitempty"`
}
