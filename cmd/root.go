package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photofolio-home/pkg/config"
	"photofolio-home/pkg/logger"
	"photofolio-home/pkg/scheduler"
	"photofolio-home/pkg/services"
)

// Configuration flags
var (
	portNumber  string
	bucketName  string
	catalogFile string
	logLevel    string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photofolio-home",
		Short: "Photofolio Home serves the portfolio homepage and its featured project slideshow",
		Long: `Photofolio Home is a command line application that serves the portfolio homepage.
The homepage rotates through a catalog of featured projects, loaded from a JSON file,
a Google Cloud Storage bucket or the built-in defaults, and keeps every open page in sync
over a WebSocket.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "Set the CATALOG_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "Set the LOG_LEVEL (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListSlidesCmd())
	rootCmd.AddCommand(newShowSlideCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if catalogFile != "" {
		os.Setenv("CATALOG_FILE", catalogFile)
	}

	if logLevel != "" {
		os.Setenv("LOG_LEVEL", logLevel)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// newService loads the catalog and builds the view service. A nil scheduler
// means wall clock ticks.
func newService(ctx context.Context, cfg *config.Config, log *zap.Logger, sched scheduler.Scheduler) (*services.Service, error) {
	catalog, err := services.LoadCatalog(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.CatalogSource(), err)
	}

	return services.NewService(cfg, catalog, services.Options{
		Scheduler: sched,
		Logger:    log,
	}), nil
}

// loadCatalogService is the setup shared by the commands that only read the catalog
func loadCatalogService(ctx context.Context) (*services.Service, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return newService(ctx, cfg, zap.NewNop(), scheduler.NewManualScheduler())
}

// newLogger builds the logger for long running commands
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
