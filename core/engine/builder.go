package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// queryPlan is a structured SELECT statement: clauses are collected first
// and serialized in one place, so partial clauses can be tested on their
// own and no raw question text is ever concatenated into projections.
type queryPlan struct {
	projections []string
	from        string
	joins       []string
	where       []string
	groupBy     []string
	orderBy     string
	orderDir    string
	limit       int
}

// SQL serializes the plan. Returns an empty string when the plan has no
// FROM table, which signals an unbuildable query to the caller.
func (p *queryPlan) SQL() string {
	if p.from == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.projections, ", "))
	b.WriteString(" FROM ")
	b.WriteString(p.from)

	for _, join := range p.joins {
		b.WriteString(" ")
		b.WriteString(join)
	}
	if len(p.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(p.where, " AND "))
	}
	if len(p.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(p.groupBy, ", "))
	}
	if p.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.orderBy)
		b.WriteString(" ")
		b.WriteString(p.orderDir)
	}
	if p.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(p.limit))
	}

	return b.String()
}

// builder assembles SQL from extracted entities against a schema catalog
type builder struct {
	catalog *Catalog
}

func newBuilder(catalog *Catalog) *builder {
	return &builder{catalog: catalog}
}

// Build turns entities into a SQL string. Aggregate mode when at least one
// aggregation was extracted, plain select mode otherwise. Returns an empty
// string when no table was detected.
func (b *builder) Build(entities Entities) string {
	tables := dedupe(entities.Tables)
	if len(tables) == 0 {
		return ""
	}

	plan := &queryPlan{
		from:     tables[0],
		where:    entities.Filters,
		orderDir: entities.OrderDirection,
		limit:    entities.Limit,
	}

	// Columns referencing a table that was not itself detected are skipped;
	// they point outside the FROM/JOIN set and would not resolve.
	columns := b.usableColumns(entities.Columns, tables)

	if len(entities.Aggregations) > 0 {
		b.buildAggregate(plan, columns, entities.Aggregations)
	} else {
		b.buildSelect(plan, columns, tables[0])
	}

	b.addJoins(plan, tables)

	// An explicitly extracted ordering wins over the aggregation default,
	// direction included
	if entities.OrderBy != "" {
		plan.orderBy = entities.OrderBy
		plan.orderDir = entities.OrderDirection
	}

	return plan.SQL()
}

func (b *builder) buildSelect(plan *queryPlan, columns []ColumnRef, firstTable string) {
	for _, col := range columns {
		plan.projections = append(plan.projections, col.Table+"."+col.Column)
	}
	if len(plan.projections) == 0 {
		plan.projections = []string{firstTable + ".*"}
	}
}

func (b *builder) buildAggregate(plan *queryPlan, columns []ColumnRef, aggs []Aggregation) {
	// Non-aggregated columns become projections and GROUP BY terms
	for _, col := range columns {
		if isAggregated(col.Column, aggs) {
			continue
		}
		qualified := col.Table + "." + col.Column
		plan.projections = append(plan.projections, qualified)
		plan.groupBy = append(plan.groupBy, qualified)
	}

	for _, agg := range aggs {
		if agg.Column == "*" {
			plan.projections = append(plan.projections, fmt.Sprintf("%s(*) as count", agg.Function))
		} else {
			plan.projections = append(plan.projections,
				fmt.Sprintf("%s(%s) as %s", agg.Function, agg.Column, agg.OutputName()))
		}
	}

	// Default ordering: first aggregation's output, descending
	plan.orderBy = aggs[0].OutputName()
	plan.orderDir = "DESC"
}

// addJoins joins every table after the first to the first table. Inference
// order: a column shared by both schemas, then the foreign-key naming
// convention in either direction. When nothing resolves the table is left
// unjoined and the query stays silently incomplete.
func (b *builder) addJoins(plan *queryPlan, tables []string) {
	first := tables[0]
	for _, other := range tables[1:] {
		if clause, ok := b.inferJoin(first, other); ok {
			plan.joins = append(plan.joins, clause)
		}
	}
}

func (b *builder) inferJoin(table1, table2 string) (string, bool) {
	// Shared column name, equality-joined
	for _, col := range b.catalog.Columns(table1) {
		if b.catalog.HasColumn(table2, col) {
			return fmt.Sprintf("JOIN %s ON %s.%s = %s.%s", table2, table1, col, table2, col), true
		}
	}

	// Foreign key convention: singular(table1)_id in table2
	fk := strings.TrimRight(table1, "s") + "_id"
	if b.catalog.HasColumn(table2, fk) {
		return fmt.Sprintf("JOIN %s ON %s.id = %s.%s", table2, table1, table2, fk), true
	}

	// Symmetric case
	fk = strings.TrimRight(table2, "s") + "_id"
	if b.catalog.HasColumn(table1, fk) {
		return fmt.Sprintf("JOIN %s ON %s.%s = %s.id", table2, table1, fk, table2), true
	}

	return "", false
}

// usableColumns drops column references whose table is absent from the
// detected table set
func (b *builder) usableColumns(columns []ColumnRef, tables []string) []ColumnRef {
	var usable []ColumnRef
	for _, col := range columns {
		if !b.catalog.Has(col.Table) {
			continue
		}
		for _, table := range tables {
			if col.Table == table {
				usable = append(usable, col)
				break
			}
		}
	}
	return usable
}

func isAggregated(column string, aggs []Aggregation) bool {
	for _, agg := range aggs {
		if agg.Column == column {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
