package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var limitPattern = regexp.MustCompile(`(top|first|limit) (\d+)`)

// extractor scans a question for schema references and query hints using
// substring containment. There is deliberately no word-boundary matching:
// short table names can false-positive inside longer words. That is a
// documented limitation of the heuristic layer, kept behind this interface
// so a real parser can replace it without touching the engine contract.
type extractor struct {
	heur Heuristics
}

func newExtractor(heur Heuristics) *extractor {
	return &extractor{heur: heur}
}

// Extract pulls tables, columns, aggregations, filters, limit and ordering
// hints out of a normalized question.
func (e *extractor) Extract(query string, catalog *Catalog) Entities {
	entities := Entities{OrderDirection: "DESC"}

	// Tables: name or naive singular (every trailing "s" stripped) present
	// as a substring, in catalog order
	for _, table := range catalog.Tables() {
		if strings.Contains(query, table) || strings.Contains(query, strings.TrimRight(table, "s")) {
			entities.Tables = append(entities.Tables, table)
		}
	}

	// Columns: bare column name present as a substring. A matched column
	// also pulls its owning table into the table set, so questions that
	// name only columns ("total quantity by marketplace") still resolve
	// to a FROM/JOIN set.
	for _, table := range catalog.Tables() {
		for _, column := range catalog.Columns(table) {
			if strings.Contains(query, column) {
				entities.Columns = append(entities.Columns, ColumnRef{Table: table, Column: column})
				if !containsString(entities.Tables, table) {
					entities.Tables = append(entities.Tables, table)
				}
			}
		}
	}

	entities.Aggregations = e.extractAggregations(query)
	entities.Filters = e.extractFilters(query)

	if m := limitPattern.FindStringSubmatch(query); m != nil {
		entities.Limit, _ = strconv.Atoi(m[2])
	}

	e.extractOrdering(query, &entities)

	return entities
}

func (e *extractor) extractAggregations(query string) []Aggregation {
	var aggs []Aggregation

	if containsAny(query, e.heur.CountKeywords) {
		aggs = append(aggs, Aggregation{Function: "COUNT", Column: "*"})
	}
	if containsAny(query, e.heur.SumKeywords) {
		for _, col := range e.heur.MeasureColumns {
			if strings.Contains(query, col) {
				aggs = append(aggs, Aggregation{Function: "SUM", Column: col})
			}
		}
	}
	if containsAny(query, e.heur.AverageKeywords) {
		for _, col := range e.heur.MeasureColumns {
			if strings.Contains(query, col) {
				aggs = append(aggs, Aggregation{Function: "AVG", Column: col})
			}
		}
	}

	return aggs
}

// extractFilters keeps everything after each filter keyword as a raw
// clause. The remainder is appended verbatim to the WHERE clause, not
// parsed into a structured predicate.
func (e *extractor) extractFilters(query string) []string {
	var filters []string
	for _, keyword := range e.heur.FilterKeywords {
		if !strings.Contains(query, keyword) {
			continue
		}
		_, rest, found := strings.Cut(query, keyword)
		if found && strings.TrimSpace(rest) != "" {
			filters = append(filters, strings.TrimSpace(rest))
		}
	}
	return filters
}

func (e *extractor) extractOrdering(query string, entities *Entities) {
	for _, keyword := range e.heur.OrderKeywords {
		if !strings.Contains(query, keyword) {
			continue
		}
		_, rest, found := strings.Cut(query, keyword)
		if !found {
			continue
		}
		rest = strings.TrimSpace(rest)
		if strings.Contains(rest, "ascending") || strings.Contains(rest, "asc") {
			entities.OrderDirection = "ASC"
		}
		for _, col := range e.heur.OrderColumns {
			if strings.Contains(rest, col) {
				entities.OrderBy = col
			}
		}
	}
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
