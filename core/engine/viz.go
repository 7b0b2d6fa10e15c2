package engine

// vizSelector maps the shape of extracted entities to a chart type. Rules
// run in a fixed order and each later match overrides the earlier one:
// bar, then line for date-like grouping columns, then pie for categorical
// ones. Default is a plain table.
type vizSelector struct {
	heur Heuristics
}

func newVizSelector(heur Heuristics) *vizSelector {
	return &vizSelector{heur: heur}
}

// Select picks a chart recommendation for the entities. The axis names it
// emits must match the aliases the query builder assigns, since the
// rendering layer binds axes by these strings.
func (v *vizSelector) Select(entities Entities) *VizConfig {
	viz := &VizConfig{Type: VizTable}

	if len(entities.Aggregations) == 0 {
		return viz
	}

	// Single grouping column with a single COUNT/SUM: bar chart
	if len(entities.Columns) == 1 && len(entities.Aggregations) == 1 {
		agg := entities.Aggregations[0]
		if agg.Function == "COUNT" || agg.Function == "SUM" {
			viz = &VizConfig{
				Type: VizBar,
				X:    entities.Columns[0].Column,
				Y:    agg.OutputName(),
			}
		}
	}

	// Date-like grouping column: line chart
	if col, ok := firstColumnIn(entities.Columns, v.heur.DateColumns); ok {
		viz = &VizConfig{
			Type: VizLine,
			X:    col,
			Y:    entities.Aggregations[0].OutputName(),
		}
	}

	// Categorical grouping column: pie chart
	if col, ok := firstColumnIn(entities.Columns, v.heur.CategoricalColumns); ok {
		viz = &VizConfig{
			Type:   VizPie,
			Names:  col,
			Values: entities.Aggregations[0].OutputName(),
		}
	}

	return viz
}

// firstColumnIn returns the first extracted column whose name appears in
// the candidate set
func firstColumnIn(columns []ColumnRef, candidates []string) (string, bool) {
	for _, col := range columns {
		for _, candidate := range candidates {
			if col.Column == candidate {
				return col.Column, true
			}
		}
	}
	return "", false
}
