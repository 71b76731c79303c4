// cmd/inventory/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ammerola/stock-tracker/cmd/inventory/commands"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
	"github.com/ammerola/stock-tracker/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Bootstrap logger until configuration is available
	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.App.Version == "dev" && Version != "dev" {
		cfg.App.Version = Version
	}

	// Reconfigure logger with loaded settings
	slogger = logger.Setup(&logger.LogConfig{
		Level:          cfg.App.LogLevel,
		Format:         cfg.App.LogFormat,
		Output:         cfg.App.LogOutput,
		AddSource:      cfg.App.LogLevel == "debug",
		Environment:    cfg.App.Environment,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
	})
	slogger.Debug("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("data_file", cfg.Inventory.DataFile),
		slog.String("build_time", BuildTime),
	)

	rootCmd := commands.NewRootCommand(&commands.App{
		Config: cfg,
		Logger: slogger,
		Out:    os.Stdout,
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slogger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
