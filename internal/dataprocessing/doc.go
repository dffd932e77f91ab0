// Package dataprocessing is the core of the billing dashboard backend: it
// normalizes monthly billing workbooks into a ledger and computes
// date-bounded comparative metrics over it.
//
// # Architecture
//
// The package has two halves, consumed in sequence:
//
// 1. Normalizer: reads a multi-sheet workbook, recognizes monthly sheets by
// name ("<MonthName> <Year>", Portuguese locale), locates each sheet's
// header row heuristically, and concatenates the cleaned rows into one
// domain.Ledger.
//
// 2. Metrics engine: given a ledger and a reference date, computes the
// current and previous month-to-date totals (day-aligned with end-of-month
// clamping), the goal (previous month's full total), per-day cumulative
// series for charting, and per-customer billing status.
//
// # Data flow
//
//	workbook bytes → Normalizer → domain.Ledger → ComputeMetrics → domain.BillingMetrics
//
// # Error handling
//
// Cell-level anomalies never escape: bad currency text parses to 0.0
// (ParseAmount), bad dates drop the row, noise rows (totals, blanks) are
// filtered. Only structural failures (unreadable workbook) and the explicit
// domain.ErrNoData condition cross the package boundary, so a call either
// returns a fully usable ledger or a clean signal, never a partial result.
package dataprocessing
