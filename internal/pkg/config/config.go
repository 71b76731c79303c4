// internal/pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ammerola/stock-tracker/internal/core/domain"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Inventory
	Inventory InventoryConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, test, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	LogOutput   string // stdout, stderr, file:<path>
}

// InventoryConfig holds inventory store configuration
type InventoryConfig struct {
	DataFile          string `required:"true"`
	LowStockThreshold int
	DefaultQuantity   int
	ExportDir         string
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Debug(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Environment: env,
			Version:     v.GetString("app.version"),
			LogLevel:    v.GetString("log.level"),
			LogFormat:   strings.ToLower(v.GetString("log.format")),
			LogOutput:   v.GetString("log.output"),
		},
		Inventory: InventoryConfig{
			DataFile:          v.GetString("inventory.data_file"),
			LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
			DefaultQuantity:   v.GetInt("inventory.default_quantity"),
			ExportDir:         v.GetString("inventory.export_dir"),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, validator := range validators {
		if err := validator.Validate(c); err != nil {
			return err
		}
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stock-tracker")
	v.SetDefault("app.version", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("inventory.data_file", domain.DefaultDataFile)
	v.SetDefault("inventory.low_stock_threshold", domain.DefaultLowStockThreshold)
	v.SetDefault("inventory.default_quantity", domain.DefaultQuantity)
	v.SetDefault("inventory.export_dir", ".")
}
