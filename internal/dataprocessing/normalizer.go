package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "faturacli/internal/errors"
	"faturacli/pkg/contracts/domain"
)

// Label synonyms accepted for each canonical ledger column. Headers are
// matched against the upper-cased, trimmed cell text.
var (
	grossAmountLabels = []string{"VLR BRUTO", "VALOR BRUTO"}
	emissionLabels    = []string{"EMISSÃO", "EMISSAO", "DATA EMISSÃO", "DATA EMISSAO"}
	forecastLabels    = []string{"VLR PREVISÃO", "VLR PREVISAO", "VALOR PREVISÃO", "VALOR PREVISAO", "PREVISÃO", "PREVISAO"}
	customerLabels    = []string{"NOME CLIENTE", "NOME DO CLIENTE", "CLIENTE", "RAZÃO SOCIAL", "RAZAO SOCIAL"}
)

// billingDayColumn is the fixed physical column holding the contractual
// billing day. It is positional in the source workbooks and independent of
// header matching.
const billingDayColumn = 1

// Normalizer reads multi-sheet billing workbooks and produces the normalized
// ledger consumed by the metrics engine.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a workbook normalizer.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger: logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize reads a workbook and concatenates every recognized monthly sheet
// into one ledger. Cell-level anomalies are absorbed into defaults (zero
// amounts, dropped rows); only structural failures (unreadable workbook) and
// the explicit no-data condition cross this boundary. A partial ledger is
// never returned: the call either yields the full result or an error.
func (n *Normalizer) Normalize(ctx context.Context, r io.Reader) (domain.Ledger, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	var ledger domain.Ledger

	for _, sheetName := range f.GetSheetList() {
		if _, _, ok := MatchMonthlySheet(sheetName); !ok {
			n.logger.DebugContext(ctx, "skipping unrecognized sheet",
				slog.String("sheet", sheetName))
			continue
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("failed to read sheet %q", sheetName), err)
		}

		sheetRows := n.normalizeSheet(ctx, strings.TrimSpace(sheetName), rows)
		ledger = append(ledger, sheetRows...)
	}

	if ledger.Empty() {
		return nil, domain.ErrNoData
	}

	n.logger.InfoContext(ctx, "workbook normalized",
		slog.Int("rows", len(ledger)))

	return ledger, nil
}

// normalizeSheet extracts ledger rows from one monthly sheet. Sheets without
// a recognizable header contribute nothing; that is a data condition, not an
// error.
func (n *Normalizer) normalizeSheet(ctx context.Context, sheetName string, rows [][]string) []domain.LedgerRow {
	headerIdx, ok := findHeaderRow(rows)
	if !ok {
		n.logger.WarnContext(ctx, "no header row found, skipping sheet",
			slog.String("sheet", sheetName))
		return nil
	}

	labels := dedupeLabels(normalizeLabels(rows[headerIdx]))
	cols := resolveColumns(labels)
	if cols.grossAmount < 0 || cols.emissionDate < 0 {
		// findHeaderRow guarantees both labels exist in the raw row; after
		// normalization they must resolve.
		return nil
	}

	var out []domain.LedgerRow
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]

		emission, ok := parseDate(cellAt(row, cols.emissionDate))
		if !ok {
			continue
		}

		customer := strings.TrimSpace(cellAt(row, cols.customerName))
		if !validCustomer(customer) {
			continue
		}

		realized := ParseAmount(cellAt(row, cols.grossAmount))
		forecast := ParseAmount(cellAt(row, cols.forecastAmount))
		if realized == 0 && forecast == 0 {
			continue
		}

		out = append(out, domain.LedgerRow{
			EmissionDate:    emission,
			BillingDayLimit: parseDayLimit(cellAt(row, billingDayColumn)),
			RealizedAmount:  realized,
			ForecastAmount:  forecast,
			CustomerName:    customer,
			SourceSheet:     sheetName,
		})
	}

	n.logger.DebugContext(ctx, "sheet normalized",
		slog.String("sheet", sheetName),
		slog.Int("header_row", headerIdx),
		slog.Int("rows", len(out)))

	return out
}

// findHeaderRow scans top to bottom for the first row whose cells contain
// both a gross-amount label and an emission-date label. Absence is reported
// through ok, not a sentinel index.
func findHeaderRow(rows [][]string) (int, bool) {
	for i, row := range rows {
		cells := normalizeLabels(row)
		if containsAnyLabel(cells, grossAmountLabels) && containsAnyLabel(cells, emissionLabels) {
			return i, true
		}
	}
	return 0, false
}

// columnIndexes holds resolved column positions for one sheet. -1 marks a
// column absent from the header.
type columnIndexes struct {
	grossAmount    int
	emissionDate   int
	forecastAmount int
	customerName   int
}

// resolveColumns maps canonical ledger fields to header positions using the
// accepted label synonyms. First match wins, which together with label
// deduplication makes lookups unambiguous.
func resolveColumns(labels []string) columnIndexes {
	return columnIndexes{
		grossAmount:    indexOfAnyLabel(labels, grossAmountLabels),
		emissionDate:   indexOfAnyLabel(labels, emissionLabels),
		forecastAmount: indexOfAnyLabel(labels, forecastLabels),
		customerName:   indexOfAnyLabel(labels, customerLabels),
	}
}

// normalizeLabels upper-cases and trims every cell of a header row.
func normalizeLabels(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.ToUpper(strings.TrimSpace(cell))
	}
	return out
}

// dedupeLabels appends a numeric suffix to repeated labels: the first
// occurrence stays unsuffixed, the second becomes "X_1", the third "X_2".
func dedupeLabels(labels []string) []string {
	seen := make(map[string]int, len(labels))
	out := make([]string, len(labels))
	for i, label := range labels {
		if count, ok := seen[label]; ok {
			seen[label] = count + 1
			out[i] = fmt.Sprintf("%s_%d", label, count)
		} else {
			seen[label] = 1
			out[i] = label
		}
	}
	return out
}

func containsAnyLabel(cells, wanted []string) bool {
	return indexOfAnyLabel(cells, wanted) >= 0
}

func indexOfAnyLabel(cells, wanted []string) int {
	for _, w := range wanted {
		for i, cell := range cells {
			if cell == w {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the cell at idx or "" when the row is shorter or the column
// was not resolved. excelize trims trailing empty cells per row, so ragged
// rows are the norm.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// validCustomer rejects the noise rows that share sheets with real line
// items: blank names, "NAN" remnants and "TOTAL"-like summary rows.
func validCustomer(name string) bool {
	if name == "" {
		return false
	}
	upper := strings.ToUpper(name)
	if upper == "NAN" || strings.Contains(upper, "TOTAL") {
		return false
	}
	return true
}

// dateLayouts lists the textual date formats observed in the billing sheets,
// tried in order. Brazilian day-first forms come before the "m-d-yy" style
// excelize emits for cells with the default date number format.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
	"02-01-2006",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// parseDate converts an emission-date cell to a calendar date (midnight UTC).
// Numeric cells are treated as Excel serial dates. Unparsable values report
// ok=false and the row is dropped by the caller.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil || t.Year() < 1900 {
			return time.Time{}, false
		}
		return toDate(t), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return toDate(t), true
		}
	}

	return time.Time{}, false
}

// parseDayLimit reads the billing-day-limit cell as an integer day of month;
// nil means the row has no billing window.
func parseDayLimit(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	day := int(v)
	return &day
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
