package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stocklens/stocklens/core/engine"
)

// schemaCmd prints the introspected schema catalog
var schemaCmd = &cobra.Command{
	Use:           "schema",
	Short:         "Print the warehouse schema catalog",
	RunE:          runSchema,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	catalog, err := engine.BuildCatalog(cmd.Context(), s)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), catalog.Render())
	return nil
}
