package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stocklens/stocklens/core/engine"
)

// BuildPrompt renders the instruction the oracle answers. The schema
// catalog is embedded as text; the model never sees row data.
func BuildPrompt(question string, catalog *engine.Catalog) string {
	return fmt.Sprintf(`You are a SQL expert. Convert the following natural language query to a valid SQLite SQL query.

Database Schema:
%s
Natural Language Query: %s

Return your response in the following JSON format:
{
    "sql_query": "The SQL query",
    "visualization": {
        "type": "bar|line|pie|table",
        "x_column": "column name for x-axis if applicable",
        "y_column": "column name for y-axis if applicable",
        "values_column": "column name for values if applicable",
        "names_column": "column name for names if applicable"
    }
}

Choose the most appropriate visualization type based on the query:
- bar: for comparing categories
- line: for time series data
- pie: for showing proportions
- table: for raw data or complex results

Only include the JSON in your response, nothing else.`, catalog.Render(), question)
}

// oracleResponse is the JSON shape the prompt asks for
type oracleResponse struct {
	SQLQuery      string `json:"sql_query"`
	Visualization struct {
		Type         string `json:"type"`
		XColumn      string `json:"x_column"`
		YColumn      string `json:"y_column"`
		ValuesColumn string `json:"values_column"`
		NamesColumn  string `json:"names_column"`
	} `json:"visualization"`
}

// ParseResponse decodes the oracle's JSON answer into the engine's
// (sql, viz) contract. Markdown code fences around the JSON are tolerated.
func ParseResponse(text string) (string, *engine.VizConfig, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp oracleResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return "", nil, fmt.Errorf("invalid oracle JSON: %w", err)
	}
	if resp.SQLQuery == "" {
		return "", nil, fmt.Errorf("oracle returned no SQL")
	}

	viz := &engine.VizConfig{Type: engine.VizTable}
	switch resp.Visualization.Type {
	case "bar":
		viz = &engine.VizConfig{Type: engine.VizBar, X: resp.Visualization.XColumn, Y: resp.Visualization.YColumn}
	case "line":
		viz = &engine.VizConfig{Type: engine.VizLine, X: resp.Visualization.XColumn, Y: resp.Visualization.YColumn}
	case "pie":
		viz = &engine.VizConfig{Type: engine.VizPie, Names: resp.Visualization.NamesColumn, Values: resp.Visualization.ValuesColumn}
	}

	return resp.SQLQuery, viz, nil
}
