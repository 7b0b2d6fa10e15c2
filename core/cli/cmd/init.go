package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stocklens/stocklens/core/infrastructure/logging"
	"github.com/stocklens/stocklens/core/store"
)

// initCmd creates the warehouse schema and seed rows
var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the warehouse database schema",
	RunE:          runInit,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	log := logging.New("init")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := store.Setup(cmd.Context(), s); err != nil {
		return err
	}

	log.Infof("Database initialized (%s)", cfg.Store.Driver)
	return nil
}
