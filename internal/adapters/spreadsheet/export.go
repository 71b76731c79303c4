// Package spreadsheet exports inventory reports to and imports items from xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// SheetName is the worksheet holding the inventory rows
const SheetName = "Inventory"

// Column headers shared by export and import
var headers = []string{"Item", "Quantity", "Tags", "Low Stock"}

// TagSeparator joins tags within one cell
const TagSeparator = ", "

// Exporter writes inventory reports as xlsx workbooks
type Exporter struct {
	logger *slog.Logger
}

// Statically assert that *Exporter implements the ReportExporter interface.
var _ ports.ReportExporter = (*Exporter)(nil)

// NewExporter creates a new spreadsheet exporter
func NewExporter(logger *slog.Logger) *Exporter {
	return &Exporter{
		logger: logger.With(slog.String("component", "spreadsheet_export")),
	}
}

// Export writes one row per item, sorted by name, after a bold header row
func (e *Exporter) Export(w io.Writer, items map[string]domain.ItemRecord, threshold int) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	low := 0
	for _, name := range names {
		record := items[name]
		row := sheet.AddRow()

		row.AddCell().SetString(name)
		row.AddCell().SetInt(record.Quantity)
		row.AddCell().SetString(strings.Join(record.Tags, TagSeparator))

		flag := ""
		if record.IsLow(threshold) {
			flag = "yes"
			low++
		}
		row.AddCell().SetString(flag)
	}

	for i := range headers {
		sheet.SetColWidth(i+1, i+1, 18)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	e.logger.Info("exported inventory report",
		slog.Int("items", len(names)),
		slog.Int("low_stock", low),
		slog.Int("threshold", threshold))

	return nil
}
