package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yungbote/ideascore-backend/internal/app"
)

var (
	configFile string
	v          = viper.New()
	exitFunc   = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "ideascore",
	Short: "Idea scoring backend",
	Long: `ideascore scores ideas against weighted, per-user criteria and ranks them
by their weighted average.

Run "ideascore serve" to start the HTTP API. The remaining commands operate
on the configured database directly.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ./ideascore.yaml when present)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode (development|production|test)")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver (postgres|sqlite)")
	rootCmd.PersistentFlags().String("db-dsn", "", "Database DSN, overrides discrete postgres/sqlite settings")

	_ = v.BindPFlag("log.mode", rootCmd.PersistentFlags().Lookup("log-mode"))
	_ = v.BindPFlag("database.driver", rootCmd.PersistentFlags().Lookup("db-driver"))
	_ = v.BindPFlag("database.dsn", rootCmd.PersistentFlags().Lookup("db-dsn"))
}

// loadApp loads configuration and wires the application. Callers own Close.
func loadApp(ctx context.Context, opts app.Options) (*app.App, error) {
	cfg, err := app.LoadConfig(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	a, err := app.New(ctx, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("error starting application: %w", err)
	}
	return a, nil
}
