package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parameter extraction patterns. Substitution into template SQL is
// restricted to integers captured here, or to identifier tokens for the
// SKU lookup; raw question text never reaches the SQL string.
var (
	topNPattern     = regexp.MustCompile(`top (\d+)`)
	lessThanPattern = regexp.MustCompile(`less than (\d+)`)
	mskuPattern     = regexp.MustCompile(`msku[:\s]+([A-Za-z0-9_]+)`)
	skuPattern      = regexp.MustCompile(`sku[:\s]+([A-Za-z0-9_]+)`)
)

const (
	defaultTopLimit       = 10
	defaultStockThreshold = 10
)

// queryTemplate is a pre-written query triggered by keyword matching.
// build receives the normalized question and returns the final SQL plus
// the template's chart recommendation.
type queryTemplate struct {
	name     string
	triggers []string
	build    func(query string) (string, *VizConfig)
}

// templateMatcher checks a question against the fixed template set.
// The order of the set is significant: templates overlap in keywords
// ("out of stock" also contains "stock") and the first match wins.
type templateMatcher struct {
	templates []queryTemplate
}

func newTemplateMatcher() *templateMatcher {
	return &templateMatcher{templates: []queryTemplate{
		{
			name:     "inventory_levels",
			triggers: []string{"inventory", "stock levels", "current stock"},
			build: func(string) (string, *VizConfig) {
				return "SELECT msku, quantity FROM inventory ORDER BY quantity DESC;",
					&VizConfig{Type: VizBar, X: "quantity", Y: "msku"}
			},
		},
		{
			name:     "top_products",
			triggers: []string{"top products", "best selling", "most sold"},
			build: func(query string) (string, *VizConfig) {
				limit := defaultTopLimit
				if m := topNPattern.FindStringSubmatch(query); m != nil {
					limit, _ = strconv.Atoi(m[1])
				}
				sql := fmt.Sprintf("SELECT p.msku, p.name, SUM(oi.quantity) as total_sold FROM order_items oi JOIN products p ON oi.msku = p.msku GROUP BY p.msku, p.name ORDER BY total_sold DESC LIMIT %d;", limit)
				return sql, &VizConfig{Type: VizBar, X: "total_sold", Y: "msku"}
			},
		},
		{
			name:     "sales_by_marketplace",
			triggers: []string{"sales by marketplace", "marketplace distribution", "platform sales"},
			build: func(string) (string, *VizConfig) {
				return "SELECT o.marketplace, SUM(oi.quantity) as total_sold FROM orders o JOIN order_items oi ON o.order_id = oi.order_id GROUP BY o.marketplace ORDER BY total_sold DESC;",
					&VizConfig{Type: VizPie, Names: "marketplace", Values: "total_sold"}
			},
		},
		{
			name:     "sales_by_date",
			triggers: []string{"sales by date", "daily sales", "sales trend"},
			build: func(string) (string, *VizConfig) {
				return "SELECT DATE(o.order_date) as date, SUM(oi.quantity) as total_sold FROM orders o JOIN order_items oi ON o.order_id = oi.order_id GROUP BY DATE(o.order_date) ORDER BY date;",
					&VizConfig{Type: VizLine, X: "date", Y: "total_sold"}
			},
		},
		{
			name:     "sales_by_state",
			triggers: []string{"sales by state", "state distribution", "geographic sales"},
			build: func(string) (string, *VizConfig) {
				return "SELECT o.customer_state, SUM(oi.quantity) as total_sold FROM orders o JOIN order_items oi ON o.order_id = oi.order_id GROUP BY o.customer_state ORDER BY total_sold DESC;",
					&VizConfig{Type: VizChoropleth, Locations: "customer_state", Values: "total_sold"}
			},
		},
		{
			name:     "low_stock_items",
			triggers: []string{"low stock", "reorder", "out of stock"},
			build: func(query string) (string, *VizConfig) {
				threshold := defaultStockThreshold
				if m := lessThanPattern.FindStringSubmatch(query); m != nil {
					threshold, _ = strconv.Atoi(m[1])
				}
				sql := fmt.Sprintf("SELECT msku, quantity FROM inventory WHERE quantity < %d ORDER BY quantity ASC;", threshold)
				return sql, &VizConfig{Type: VizBar, X: "quantity", Y: "msku"}
			},
		},
		{
			name:     "sku_mappings",
			triggers: []string{"sku mapping", "msku", "sku to msku"},
			build: func(query string) (string, *VizConfig) {
				var msku, sku string
				if m := mskuPattern.FindStringSubmatch(query); m != nil {
					msku = m[1]
				}
				if m := skuPattern.FindStringSubmatch(query); m != nil {
					sku = m[1]
				}
				// Both tokens may be empty; the resulting WHERE clause then
				// matches nothing. Preserved behavior, see the engine tests.
				sql := fmt.Sprintf("SELECT sku, msku, marketplace FROM sku_mappings WHERE msku = '%s' OR sku = '%s';", msku, sku)
				return sql, &VizConfig{Type: VizTable}
			},
		},
	}}
}

// Match checks the normalized question against each template in order.
// Returns the template SQL and chart recommendation on the first hit.
func (tm *templateMatcher) Match(query string) (string, *VizConfig, bool) {
	for _, tpl := range tm.templates {
		for _, trigger := range tpl.triggers {
			if strings.Contains(query, trigger) {
				sql, viz := tpl.build(query)
				return sql, viz, true
			}
		}
	}
	return "", nil, false
}
