package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ArowuTest/lotto645-backend/internal/app"
	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "lottoctl",
		Short:         "Manage and inspect the 6/45 draw dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "Directory containing config.yaml")

	root.AddCommand(
		newImportCmd(),
		newSyncCmd(),
		newStatsCmd(),
		newGenerateCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// withApp loads configuration, wires the application and loads the dataset
// before running fn
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Init(&logger.Options{Level: logger.ParseLevel(cfg.LogLevel), Writer: os.Stderr})

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.DrawService.Reload(ctx); err != nil {
		return err
	}
	return fn(a)
}
