// Package engine turns free-text questions about the warehouse into
// executable SQL plus a chart recommendation. A fixed template set is
// tried first; on a miss the question goes through heuristic entity
// extraction and structured query building. Results are always returned
// as data, never as errors: an unanswerable question produces an empty
// triple and an execution failure keeps the attempted SQL with no rows.
package engine

import (
	"context"
	"strings"

	"github.com/stocklens/stocklens/core/infrastructure/logging"
	"github.com/stocklens/stocklens/core/store"
)

// Translator is the optional external oracle (Collaborator B). Implementers
// receive the question and the schema catalog and must honor the same
// (sql, viz) contract as the rule-based pipeline.
type Translator interface {
	Translate(ctx context.Context, question string, catalog *Catalog) (string, *VizConfig, error)
}

// Engine is the natural-language-to-SQL query engine
type Engine struct {
	store      store.Store
	catalog    *Catalog
	templates  *templateMatcher
	extractor  *extractor
	builder    *builder
	viz        *vizSelector
	translator Translator
	log        *logging.Logger
}

// Option configures the engine
type Option func(*options)

type options struct {
	heuristics Heuristics
	translator Translator
}

// WithHeuristics replaces the default keyword dictionaries
func WithHeuristics(h Heuristics) Option {
	return func(o *options) { o.heuristics = h }
}

// WithTranslator installs an external oracle consulted when the template
// matcher misses, in place of the heuristic extract-and-build pipeline
func WithTranslator(t Translator) Option {
	return func(o *options) { o.translator = t }
}

// New builds an engine over the store. The schema catalog is introspected
// once here; if the store is unreachable the engine starts with an empty
// catalog and logs the degradation instead of failing, so callers can
// still serve template-free traffic once the store recovers executions.
func New(ctx context.Context, s store.Store, opts ...Option) *Engine {
	o := &options{heuristics: DefaultHeuristics()}
	for _, opt := range opts {
		opt(o)
	}

	log := logging.New("engine")

	catalog, err := BuildCatalog(ctx, s)
	if err != nil {
		log.Warnf("Schema unavailable, starting with empty catalog: %v", err)
		catalog = EmptyCatalog()
	} else {
		log.Infof("Retrieved schema for %d tables", catalog.Len())
	}

	return &Engine{
		store:      s,
		catalog:    catalog,
		templates:  newTemplateMatcher(),
		extractor:  newExtractor(o.heuristics),
		builder:    newBuilder(catalog),
		viz:        newVizSelector(o.heuristics),
		translator: o.translator,
		log:        log,
	}
}

// Catalog returns the engine's schema snapshot
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// ProcessQuery answers a free-text question. The returned Result always
// has a non-nil Rows table; SQL and Viz are empty when the question could
// not be translated, and Rows is empty when execution failed.
func (e *Engine) ProcessQuery(ctx context.Context, question string) Result {
	normalized := strings.ToLower(strings.TrimSpace(question))
	e.log.Infof("Processing query: %s", normalized)

	sql, viz := e.translate(ctx, normalized)
	if sql == "" {
		e.log.Warnf("Could not parse query: %s", normalized)
		return Result{Rows: &store.Result{}}
	}

	e.log.Infof("Generated SQL: %s", sql)

	rows, err := e.store.Query(ctx, sql)
	if err != nil {
		// Reported, never retried: the caller renders "no results" and the
		// attempted SQL stays visible for debugging
		e.log.Errorf("Error executing SQL query: %v", err)
		return Result{SQL: sql, Rows: &store.Result{}, Viz: viz}
	}

	e.log.Infof("Query returned %d rows", rows.Len())
	return Result{SQL: sql, Rows: rows, Viz: viz}
}

// translate produces (sql, viz) from the normalized question: templates
// first, then the oracle when configured, else extraction and building
func (e *Engine) translate(ctx context.Context, normalized string) (string, *VizConfig) {
	if sql, viz, ok := e.templates.Match(normalized); ok {
		return sql, viz
	}

	if e.translator != nil {
		sql, viz, err := e.translator.Translate(ctx, normalized, e.catalog)
		if err != nil {
			e.log.Errorf("Translator failed, falling back to rules: %v", err)
		} else if sql != "" {
			return sql, viz
		}
	}

	entities := e.extractor.Extract(normalized, e.catalog)
	sql := e.builder.Build(entities)
	if sql == "" {
		return "", nil
	}
	return sql, e.viz.Select(entities)
}

// ExampleQueries returns questions the engine is known to answer well,
// shown as suggestions in the dashboard
func (e *Engine) ExampleQueries() []string {
	return []string{
		"Show me the current inventory levels",
		"What are the top 10 selling products?",
		"Show sales distribution by marketplace",
		"What is the daily sales trend?",
		"Show me sales by state",
		"Which products have less than 5 items in stock?",
		"Show me the SKU mappings for MSKU: CSTE_0322_ST_Axolotl_Blue",
		"Count total orders by marketplace",
		"What is the average order quantity by product?",
	}
}
