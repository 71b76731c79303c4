package spreadsheet

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// ImportResult summarizes one workbook import
type ImportResult struct {
	Added    int
	Skipped  int
	Rejected int
}

// Importer adds items from the first sheet of an xlsx workbook.
// Row 1 is a header; columns are Item, Quantity, Tags.
type Importer struct {
	store  ports.InventoryStore
	logger *slog.Logger
}

// NewImporter creates an importer feeding store
func NewImporter(store ports.InventoryStore, logger *slog.Logger) *Importer {
	return &Importer{
		store:  store,
		logger: logger.With(slog.String("component", "spreadsheet_import")),
	}
}

// ImportFile opens path and imports its rows
func (i *Importer) ImportFile(path string) (ImportResult, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	return i.Import(file)
}

// ImportBinary parses an in-memory workbook and imports its rows
func (i *Importer) ImportBinary(raw []byte) (ImportResult, error) {
	file, err := xlsx.OpenBinary(raw)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	return i.Import(file)
}

// Import adds every data row of the first sheet through the store, so each
// row is validated like any other Add. Rows without a name are skipped.
func (i *Importer) Import(file *xlsx.File) (ImportResult, error) {
	var result ImportResult
	if len(file.Sheets) == 0 {
		return result, nil
	}

	sheet := file.Sheets[0]
	rowIdx := 0

	err := sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		// Skip header row
		if rowIdx == 1 {
			return nil
		}

		name, opts, err := parseRow(r)
		if err != nil {
			i.logger.Warn("skipping spreadsheet row",
				slog.Int("row", rowIdx),
				slog.String("error", err.Error()))
			result.Skipped++
			return nil
		}
		if name == "" {
			result.Skipped++
			return nil
		}

		if err := i.store.Add(name, opts...); err != nil {
			result.Rejected++
			return nil
		}
		result.Added++
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to process Excel rows: %w", err)
	}

	i.logger.Info("spreadsheet import completed",
		slog.Int("added", result.Added),
		slog.Int("skipped", result.Skipped),
		slog.Int("rejected", result.Rejected))

	return result, nil
}

func parseRow(r *xlsx.Row) (string, []domain.RecordOption, error) {
	get := func(idx int) string {
		c := r.GetCell(idx)
		if c == nil {
			return ""
		}
		return strings.TrimSpace(c.String())
	}

	name := get(0)
	if name == "" {
		return "", nil, nil
	}

	var opts []domain.RecordOption
	if raw := get(1); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return "", nil, fmt.Errorf("item %q: invalid quantity %q", name, raw)
		}
		opts = append(opts, domain.WithQuantity(quantity))
	}

	if raw := get(2); raw != "" {
		var tags []string
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		opts = append(opts, domain.WithTags(tags...))
	}

	return name, opts, nil
}
