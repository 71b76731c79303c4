// internal/core/ports/report_exporter.go
package ports

import (
	"io"

	"github.com/ammerola/stock-tracker/internal/core/domain"
)

// ReportExporter renders an inventory report to w, flagging items below threshold.
type ReportExporter interface {
	Export(w io.Writer, items map[string]domain.ItemRecord, threshold int) error
}
