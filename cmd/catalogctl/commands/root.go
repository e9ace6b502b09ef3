package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"catalog/internal/app"
	"catalog/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Administrative tasks for the catalog service",
	Long: `catalogctl runs one-off maintenance against the catalog database.

Commands:
  migrate            - Apply the catalog schema
  reconcile-ratings  - Recompute every product's stored rating
  create-admin       - Create an administrator account`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig reads .env and the environment, applying the --db override.
func loadConfig() (*config.Config, *zap.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, err
	}
	cfg := config.LoadEnv()
	if dbURL != "" {
		cfg.Postgres.URL = dbURL
		cfg.Store.Driver = "postgres"
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, nil, err
	}

	cfg.Logger.Encoding = "console"
	if verbose {
		cfg.Logger.Level = "debug"
	} else {
		cfg.Logger.Level = "warn"
	}
	logger, err := config.NewLogger(cfg.Logger, false)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// withApp builds the service graph for the duration of fn.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
