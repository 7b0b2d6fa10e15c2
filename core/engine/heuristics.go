package engine

// Heuristics holds the keyword dictionaries and candidate-column lists the
// extractor and visualization selector work from. They are passed in at
// construction rather than hardcoded so tests can substitute smaller
// vocabularies; DefaultHeuristics mirrors the dashboard's vocabulary.
type Heuristics struct {
	// Aggregation verbs
	CountKeywords   []string `yaml:"count_keywords"`
	SumKeywords     []string `yaml:"sum_keywords"`
	AverageKeywords []string `yaml:"average_keywords"`

	// Columns eligible as SUM/AVG measures
	MeasureColumns []string `yaml:"measure_columns"`

	// Filter clause markers, checked in order
	FilterKeywords []string `yaml:"filter_keywords"`

	// Ordering markers and candidate order columns
	OrderKeywords []string `yaml:"order_keywords"`
	OrderColumns  []string `yaml:"order_columns"`

	// Column-name sets driving chart selection
	DateColumns        []string `yaml:"date_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`
}

// DefaultHeuristics returns the built-in dictionaries
func DefaultHeuristics() Heuristics {
	return Heuristics{
		CountKeywords:      []string{"count"},
		SumKeywords:        []string{"sum", "total"},
		AverageKeywords:    []string{"average", "mean"},
		MeasureColumns:     []string{"quantity", "price", "revenue"},
		FilterKeywords:     []string{"where", "with", "has", "contains", "greater than", "less than", "equal to"},
		OrderKeywords:      []string{"order by", "sort by", "ranked by"},
		OrderColumns:       []string{"quantity", "price", "revenue", "date"},
		DateColumns:        []string{"date", "order_date", "created_at", "updated_at"},
		CategoricalColumns: []string{"marketplace", "category", "customer_state"},
	}
}
