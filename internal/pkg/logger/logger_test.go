package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLoggerWithWriter(&logger.LogConfig{
		Level:       "info",
		Format:      "json",
		Environment: "test",
	}, &buf)

	l.Info("added item", slog.String("item", "Pen"), slog.Int("quantity", 15))
	l.Debug("hidden")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "added item", entry["msg"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "Pen", entry["item"])
	assert.Equal(t, float64(15), entry["quantity"])
	assert.Equal(t, "test", entry["env"])
	assert.IsType(t, "", entry["time"])
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected []string
	}{
		{name: "debug_level", level: "debug", expected: []string{"d", "i", "w", "e"}},
		{name: "info_level", level: "info", expected: []string{"i", "w", "e"}},
		{name: "warning_alias", level: "warning", expected: []string{"w", "e"}},
		{name: "error_level", level: "ERROR", expected: []string{"e"}},
		{name: "unknown_defaults_to_info", level: "verbose", expected: []string{"i", "w", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.NewLoggerWithWriter(&logger.LogConfig{Level: tt.level, Format: "json"}, &buf)

			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			var got []string
			for _, entry := range decodeLines(t, &buf) {
				got = append(got, entry["msg"].(string))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_WithContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLoggerWithWriter(&logger.LogConfig{Level: "info", Format: "json"}, &buf)

	ctx := logger.WithRunID(context.Background())
	ctx = logger.WithCommand(ctx, "add")
	ctx = logger.WithDataFile(ctx, "stock.json")
	runID := logger.RunID(ctx)
	require.NotEqual(t, uuid.Nil, runID)

	l.WithContext(ctx).Info("added item")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, runID.String(), entries[0]["run_id"])
	assert.Equal(t, "add", entries[0]["command"])
	assert.Equal(t, "stock.json", entries[0]["data_file"])
}

func TestWithRunID_KeepsExistingID(t *testing.T) {
	ctx := logger.WithRunID(context.Background())
	first := logger.RunID(ctx)

	assert.Equal(t, first, logger.RunID(logger.WithRunID(ctx)))
	assert.Equal(t, uuid.Nil, logger.RunID(context.Background()))
}

func TestContextHandler_ExtractsValuesOnHandle(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLoggerWithWriter(&logger.LogConfig{Level: "info", Format: "json"}, &buf)

	ctx := logger.WithCommand(context.Background(), "report")
	l.InfoContext(ctx, "inventory is empty")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "report", entries[0]["command"])
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewLoggerWithWriter(&logger.LogConfig{Level: "info", Format: "text"}, &buf)

	l.With(slog.String("service", "inventory")).
		Warn("low stock items", slog.String("items", "Notebook"))
	l.Debug("not written")

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "low stock items")
	assert.Contains(t, out, "service=inventory")
	assert.Contains(t, out, "items=Notebook")
	assert.NotContains(t, out, "not written")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestPrettyTextHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewPrettyTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	slog.New(h).With(slog.String("outer", "a")).WithGroup("g").Info("msg", slog.String("inner", "b"))

	out := buf.String()
	assert.Contains(t, out, "outer=a")
	assert.Contains(t, out, "g.inner=b")
}

func TestSetup_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	l := logger.Setup(&logger.LogConfig{Level: "error", Format: "json", Output: "stderr"})

	assert.Equal(t, l.Logger, slog.Default())
}
