package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stocklens/stocklens/core/warehouse"
)

var askJSON bool

// askCmd answers a single question and prints the result
var askCmd = &cobra.Command{
	Use:           "ask <question>",
	Short:         "Ask the warehouse a question",
	Example:       `  stocklens ask "show me the current inventory levels"`,
	RunE:          runAsk,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	eng, err := buildEngine(ctx, cfg, s)
	if err != nil {
		return err
	}

	result := eng.ProcessQuery(ctx, question)
	if result.SQL == "" {
		return fmt.Errorf("could not translate question: %q", question)
	}

	if _, err := warehouse.NewHistory(s).Record(ctx, question, result.SQL, result.Rows.Len()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"question":      question,
			"sql":           result.SQL,
			"rows":          result.Rows.Rows,
			"row_count":     result.Rows.Len(),
			"visualization": result.Viz,
		})
	}

	fmt.Fprintf(out, "SQL: %s\n", result.SQL)
	if result.Viz != nil {
		fmt.Fprintf(out, "Suggested chart: %s\n", result.Viz.Type)
	}
	fmt.Fprintf(out, "Rows: %d\n", result.Rows.Len())

	if result.Rows.Len() > 0 {
		fmt.Fprintln(out, strings.Join(result.Rows.Columns, "\t"))
		for _, row := range result.Rows.Rows {
			values := make([]string, 0, len(result.Rows.Columns))
			for _, col := range result.Rows.Columns {
				values = append(values, fmt.Sprint(row[col]))
			}
			fmt.Fprintln(out, strings.Join(values, "\t"))
		}
	}
	return nil
}
