package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrNoData signals that normalization produced an empty ledger: either no
// sheet in the workbook matched the monthly naming pattern, or every row was
// filtered out. Callers render an idle/empty state for it, never a failure.
var ErrNoData = errors.New("no billing data found in workbook")

// LedgerRow represents a single billable line item extracted from a monthly
// billing sheet. Rows that survive normalization always have a valid
// EmissionDate and at least one non-zero amount.
type LedgerRow struct {
	EmissionDate    time.Time `json:"emission_date" validate:"required"`
	BillingDayLimit *int      `json:"billing_day_limit,omitempty"` // contractual day of month; nil = no window
	RealizedAmount  float64   `json:"realized_amount" validate:"min=0"`
	ForecastAmount  float64   `json:"forecast_amount" validate:"min=0"`
	CustomerName    string    `json:"customer_name" validate:"required"`
	SourceSheet     string    `json:"source_sheet" validate:"required"`
}

// Ledger is the normalized union of all recognized monthly sheets.
// It is rebuilt from scratch on every upload and never mutated afterwards.
type Ledger []LedgerRow

// Empty reports whether the ledger holds no rows.
func (l Ledger) Empty() bool {
	return len(l) == 0
}

// FilterCustomers returns the subset of rows whose customer name is in the
// given set. Matching is case-insensitive on the trimmed name. An empty set
// returns the ledger unchanged.
func (l Ledger) FilterCustomers(names []string) Ledger {
	if len(names) == 0 {
		return l
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToUpper(strings.TrimSpace(n))] = struct{}{}
	}
	out := make(Ledger, 0, len(l))
	for _, row := range l {
		if _, ok := set[strings.ToUpper(row.CustomerName)]; ok {
			out = append(out, row)
		}
	}
	return out
}

// FilterSheet returns the rows originating from the named sheet.
// Sheet names are compared case-insensitively after trimming.
func (l Ledger) FilterSheet(name string) Ledger {
	want := strings.ToUpper(strings.TrimSpace(name))
	out := make(Ledger, 0, len(l))
	for _, row := range l {
		if strings.ToUpper(strings.TrimSpace(row.SourceSheet)) == want {
			out = append(out, row)
		}
	}
	return out
}

// BillingStatus classifies a customer's row against a reference day of month.
type BillingStatus string

const (
	StatusCompleted BillingStatus = "completed" // realized amount present
	StatusOverdue   BillingStatus = "overdue"   // window elapsed, nothing billed
	StatusOnTime    BillingStatus = "on_time"   // window still open
	StatusNoWindow  BillingStatus = "no_window" // no contractual billing day
)

// String implements fmt.Stringer.
func (s BillingStatus) String() string {
	return string(s)
}
