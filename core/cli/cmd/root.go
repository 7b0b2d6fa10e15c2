package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stocklens/stocklens/core/config"
	"github.com/stocklens/stocklens/core/engine"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
	"github.com/stocklens/stocklens/core/store"
	"github.com/stocklens/stocklens/core/translator"
)

// version stores the version string, set via SetVersion()
var version = "dev"

// SetVersion sets the version string (called from main.init())
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version string
func GetVersion() string {
	return version
}

var (
	configFile  string
	verbose     bool
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "stocklens",
	Short:         "StockLens\nAsk your warehouse questions in plain English",
	SilenceUsage:  true,
	SilenceErrors: true, // Errors are already logged, suppress Cobra's error output
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to stocklens.yaml (default: ./stocklens.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (sets log level to DEBUG)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the installed version and exit")

	// Root command should only print help.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		return cmd.Help()
	}
}

// LoadEnvFiles attempts to load .env files from multiple locations.
// It tries each location in order and stops at the first successful load.
// System environment variables always take precedence over .env file values.
func LoadEnvFiles() {
	envFiles := []string{".env.local", ".env.development", ".env"}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			return
		}
	}

	// Try loading from the directory containing the executable binary
	if execPath, err := os.Executable(); err == nil {
		if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = realPath
		}
		execDir := filepath.Dir(execPath)
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(execDir, envFile)); err == nil {
				return
			}
		}
	}
}

// loadConfig applies env files, flags and the config file
func loadConfig() (*config.Config, error) {
	LoadEnvFiles()

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		logging.SetLogLevel(logging.LogLevelDebug)
	}
	return cfg, nil
}

// openStore connects to the configured database
func openStore(cfg *config.Config) (store.Store, error) {
	return store.Open(cfg.Store.Driver, cfg.Store.DSN)
}

// buildEngine assembles the query engine, attaching the Gemini
// translator when configured
func buildEngine(ctx context.Context, cfg *config.Config, s store.Store) (*engine.Engine, error) {
	var opts []engine.Option
	if cfg.Heuristics != nil {
		opts = append(opts, engine.WithHeuristics(*cfg.Heuristics))
	}
	if cfg.Gemini.Enabled {
		gem, err := translator.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini translator: %w", err)
		}
		opts = append(opts, engine.WithTranslator(gem))
	}
	return engine.New(ctx, s, opts...), nil
}
