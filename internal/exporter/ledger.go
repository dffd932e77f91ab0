package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"faturacli/pkg/contracts/domain"
)

// LedgerExporter writes normalized billing rows as CSV
type LedgerExporter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel opens the file with the right
	// encoding for accented customer names.
	BOMPrefix bool
}

// NewLedgerExporter creates a new ledger exporter
func NewLedgerExporter() *LedgerExporter {
	return &LedgerExporter{BOMPrefix: true}
}

// Export writes the ledger to w as CSV with headers
func (e *LedgerExporter) Export(w io.Writer, ledger domain.Ledger) error {
	if e.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(e.headers()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range ledger {
		if err := writer.Write(e.rowToCSV(row)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (e *LedgerExporter) headers() []string {
	return []string{
		"EmissionDate",
		"BillingDayLimit",
		"RealizedAmount",
		"ForecastAmount",
		"CustomerName",
		"SourceSheet",
	}
}

func (e *LedgerExporter) rowToCSV(row domain.LedgerRow) []string {
	dayLimit := ""
	if row.BillingDayLimit != nil {
		dayLimit = formatInt(int64(*row.BillingDayLimit))
	}

	return []string{
		row.EmissionDate.Format("2006-01-02"),
		dayLimit,
		formatFloat(row.RealizedAmount),
		formatFloat(row.ForecastAmount),
		row.CustomerName,
		row.SourceSheet,
	}
}
