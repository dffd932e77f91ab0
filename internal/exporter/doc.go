// Package exporter provides CSV export of the normalized billing ledger.
//
// LedgerExporter writes rows to any io.Writer, so it works for both HTTP
// download responses and files. A UTF-8 BOM is prefixed by default so Excel
// renders accented Portuguese customer names correctly.
//
// Example usage:
//
//	e := exporter.NewLedgerExporter()
//	err := e.Export(w, ledger)
package exporter
