package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/pkg/config"
	"github.com/ammerola/stock-tracker/test/helpers"
)

func quietLogger() *slog.Logger {
	return helpers.TestLogger()
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	for _, key := range []string{
		"APP_NAME", "LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
		"INVENTORY_DATA_FILE", "INVENTORY_LOW_STOCK_THRESHOLD",
		"INVENTORY_DEFAULT_QUANTITY", "INVENTORY_EXPORT_DIR",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "stock-tracker", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "text", cfg.App.LogFormat)
	assert.Equal(t, "stderr", cfg.App.LogOutput)
	assert.Equal(t, "stock.json", cfg.Inventory.DataFile)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 10, cfg.Inventory.DefaultQuantity)
	assert.Equal(t, ".", cfg.Inventory.ExportDir)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INVENTORY_DATA_FILE", "/var/lib/stock/stock.json")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "8")
	t.Setenv("INVENTORY_DEFAULT_QUANTITY", "1")

	cfg, err := config.Load(quietLogger())
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/var/lib/stock/stock.json", cfg.Inventory.DataFile)
	assert.Equal(t, 8, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 1, cfg.Inventory.DefaultQuantity)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "-1")

	cfg, err := config.Load(quietLogger())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "low_stock_threshold must be non-negative")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid_test_config",
			mutate: func(c *config.Config) {},
		},
		{
			name:      "missing_data_file",
			mutate:    func(c *config.Config) { c.Inventory.DataFile = " " },
			wantError: true,
			errorMsg:  "Inventory.DataFile",
		},
		{
			name:      "missing_app_name",
			mutate:    func(c *config.Config) { c.App.Name = "" },
			wantError: true,
			errorMsg:  "App.Name",
		},
		{
			name:      "negative_default_quantity",
			mutate:    func(c *config.Config) { c.Inventory.DefaultQuantity = -3 },
			wantError: true,
			errorMsg:  "default_quantity must be non-negative",
		},
		{
			name:      "unknown_log_format",
			mutate:    func(c *config.Config) { c.App.LogFormat = "xml" },
			wantError: true,
			errorMsg:  "log format must be json or text",
		},
		{
			name: "production_requires_json_logs",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
				c.Inventory.DataFile = "/srv/stock.json"
			},
			wantError: true,
			errorMsg:  "json log format must be used in production",
		},
		{
			name: "production_requires_absolute_data_file",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
				c.App.LogFormat = "json"
			},
			wantError: true,
			errorMsg:  "absolute path",
		},
		{
			name: "valid_production_config",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
				c.App.LogFormat = "json"
				c.Inventory.DataFile = "/srv/stock.json"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := helpers.LoadTestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_MissingFieldWrapsSentinel(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Inventory.DataFile = ""

	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingRequiredConfig)
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Environment = "local"
	assert.True(t, cfg.IsDevelopment())
}
