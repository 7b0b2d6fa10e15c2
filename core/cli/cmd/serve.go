package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stocklens/stocklens/core/infrastructure/logging"
	transport "github.com/stocklens/stocklens/core/infrastructure/transport/http"
	"github.com/stocklens/stocklens/core/warehouse"
)

var servePort int

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Serve the warehouse query API",
	RunE:          runServe,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Server port (overrides config file)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.New("serve")
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
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

	srv := transport.NewServer(cfg.Server.Port)
	transport.RegisterRoutes(srv.Router(), eng, warehouse.NewMapper(s), warehouse.NewHistory(s))

	if err := srv.Start(); err != nil {
		return err
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("Shutdown signal received")
	return srv.Stop()
}
