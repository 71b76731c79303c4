// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/pkg/config"
)

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// LogRecord is one captured log event
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogCapture records every event written through loggers created by NewCaptureLogger
type LogCapture struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewCaptureLogger returns a logger whose output is kept in memory
func NewCaptureLogger() (*slog.Logger, *LogCapture) {
	capture := &LogCapture{}
	return slog.New(&captureHandler{capture: capture}), capture
}

// Records returns a copy of all captured events
func (c *LogCapture) Records() []LogRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]LogRecord(nil), c.records...)
}

// AtLevel returns the captured events of one level
func (c *LogCapture) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range c.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first event with the given level and message
func (c *LogCapture) Find(level slog.Level, msg string) (LogRecord, bool) {
	for _, r := range c.Records() {
		if r.Level == level && r.Message == msg {
			return r, true
		}
	}
	return LogRecord{}, false
}

// Reset drops all captured events
func (c *LogCapture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
}

type captureHandler struct {
	capture *LogCapture
	attrs   []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]string, len(h.attrs)+r.NumAttrs()),
	}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.String()
		return true
	})

	h.capture.mu.Lock()
	h.capture.records = append(h.capture.records, rec)
	h.capture.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{
		capture: h.capture,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "stock-tracker-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			LogOutput:   "stdout",
		},
		Inventory: config.InventoryConfig{
			DataFile:          domain.DefaultDataFile,
			LowStockThreshold: domain.DefaultLowStockThreshold,
			DefaultQuantity:   domain.DefaultQuantity,
			ExportDir:         os.TempDir(),
		},
	}
}

// CreateTestRecord creates a test inventory record
func CreateTestRecord(overrides ...domain.RecordOption) domain.ItemRecord {
	opts := append([]domain.RecordOption{
		domain.WithQuantity(15),
		domain.WithTags("stationery"),
	}, overrides...)
	return domain.NewItemRecord(opts...)
}

// CreateTestRecords creates count records named "Item 1".."Item count" with quantity i
func CreateTestRecords(count int) map[string]domain.ItemRecord {
	items := make(map[string]domain.ItemRecord, count)
	for i := 1; i <= count; i++ {
		items[fmt.Sprintf("Item %d", i)] = CreateTestRecord(
			domain.WithQuantity(i),
			domain.WithTags(fmt.Sprintf("group-%d", i%3)),
		)
	}
	return items
}

// StationeryInventory returns the Pen/Notebook inventory used across tests
func StationeryInventory() map[string]domain.ItemRecord {
	return map[string]domain.ItemRecord{
		"Pen":      {Quantity: 15, Tags: []string{"stationery"}},
		"Notebook": {Quantity: 7, Tags: []string{"stationery"}},
	}
}

// TempStockPath returns a data file path inside a per-test directory
func TempStockPath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), domain.DefaultDataFile)
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t testing.TB, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	require.NoError(t, file.Close())

	return file.Name()
}
