package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectViz_DefaultTable(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	viz := v.Select(Entities{
		Tables:  []string{"orders"},
		Columns: []ColumnRef{{Table: "orders", Column: "status"}},
	})
	assert.Equal(t, &VizConfig{Type: VizTable}, viz)
}

func TestSelectViz_BarForSingleGroupAndAggregation(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	viz := v.Select(Entities{
		Columns:      []ColumnRef{{Table: "orders", Column: "status"}},
		Aggregations: []Aggregation{{Function: "COUNT", Column: "*"}},
	})
	assert.Equal(t, &VizConfig{Type: VizBar, X: "status", Y: "count"}, viz)
}

func TestSelectViz_AvgDoesNotTriggerBar(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	viz := v.Select(Entities{
		Columns:      []ColumnRef{{Table: "orders", Column: "status"}},
		Aggregations: []Aggregation{{Function: "AVG", Column: "price"}},
	})
	assert.Equal(t, VizTable, viz.Type)
}

func TestSelectViz_LineOverridesBarForDateColumns(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	viz := v.Select(Entities{
		Columns:      []ColumnRef{{Table: "orders", Column: "order_date"}},
		Aggregations: []Aggregation{{Function: "SUM", Column: "quantity"}},
	})
	assert.Equal(t, &VizConfig{Type: VizLine, X: "order_date", Y: "sum_quantity"}, viz)
}

func TestSelectViz_PieOverridesLineForCategoricalColumns(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	// Both a date-like and a categorical grouping column: the categorical
	// rule runs last and wins
	viz := v.Select(Entities{
		Columns: []ColumnRef{
			{Table: "orders", Column: "order_date"},
			{Table: "orders", Column: "marketplace"},
		},
		Aggregations: []Aggregation{{Function: "SUM", Column: "quantity"}},
	})
	assert.Equal(t, &VizConfig{Type: VizPie, Names: "marketplace", Values: "sum_quantity"}, viz)
}

func TestSelectViz_TwoAggregationsStillDeterministic(t *testing.T) {
	v := newVizSelector(DefaultHeuristics())

	// Two aggregations and two grouping columns must still yield exactly
	// one selection per the fixed rule order
	viz := v.Select(Entities{
		Columns: []ColumnRef{
			{Table: "orders", Column: "marketplace"},
			{Table: "orders", Column: "customer_state"},
		},
		Aggregations: []Aggregation{
			{Function: "SUM", Column: "quantity"},
			{Function: "AVG", Column: "price"},
		},
	})
	assert.Equal(t, &VizConfig{Type: VizPie, Names: "marketplace", Values: "sum_quantity"}, viz)
}

func TestAggregation_OutputName(t *testing.T) {
	assert.Equal(t, "count", Aggregation{Function: "COUNT", Column: "*"}.OutputName())
	assert.Equal(t, "sum_quantity", Aggregation{Function: "SUM", Column: "quantity"}.OutputName())
	assert.Equal(t, "avg_price", Aggregation{Function: "AVG", Column: "price"}.OutputName())
}
