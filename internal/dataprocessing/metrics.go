package dataprocessing

import (
	"sort"
	"time"

	"faturacli/pkg/contracts/domain"
)

// ComputeMetrics derives the comparative month-to-date metrics for a
// reference date. The ledger passed in may already be filtered by customer;
// the computation is oblivious to any upstream filtering.
//
// The comparison window for the previous month is aligned by day of month:
// reference day N maps to day N of the previous month, clamped to that
// month's last day when it is shorter (day 31 against a 30-day month
// compares through day 30).
func ComputeMetrics(ledger domain.Ledger, ref time.Time) domain.BillingMetrics {
	ref = toDate(ref)

	currentStart := monthStart(ref)
	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := monthStart(previousEnd)
	alignedPrevious := alignPreviousDate(ref, previousStart, previousEnd)

	current := sumRealized(ledger, currentStart, ref)
	previous := sumRealized(ledger, previousStart, alignedPrevious)
	goal := sumRealized(ledger, previousStart, previousEnd)

	difference := current - previous
	percentDifference := 0.0
	if previous > 0 {
		percentDifference = difference / previous * 100
	}
	goalProgress := 0.0
	if goal > 0 {
		goalProgress = current / goal * 100
	}

	return domain.BillingMetrics{
		ReferenceDate:       ref,
		AlignedPreviousDate: alignedPrevious,
		CurrentAccumulated:  current,
		PreviousAccumulated: previous,
		GoalTotal:           goal,
		Difference:          difference,
		PercentDifference:   percentDifference,
		GoalProgressPercent: goalProgress,
		OverdueCount:        countOverdue(ledger.FilterSheet(MonthSheetName(ref)), ref.Day()),
		CurrentDailySeries:  dailySeries(ledger, currentStart, monthEnd(ref)),
		PreviousDailySeries: dailySeries(ledger, previousStart, previousEnd),
	}
}

// ClassifyRow classifies one ledger row against the reference day of month:
// anything already billed is completed regardless of its window; unbilled
// rows are overdue once their billing day has passed, on time while it has
// not, and windowless when no billing day is set.
func ClassifyRow(row domain.LedgerRow, refDay int) domain.BillingStatus {
	switch {
	case row.RealizedAmount > 0:
		return domain.StatusCompleted
	case row.BillingDayLimit == nil:
		return domain.StatusNoWindow
	case *row.BillingDayLimit < refDay:
		return domain.StatusOverdue
	default:
		return domain.StatusOnTime
	}
}

// ClassifyLedger builds the per-customer status table for the given rows,
// ordered by billing day (windowless rows last) then status.
func ClassifyLedger(ledger domain.Ledger, refDay int) []domain.CustomerStatus {
	out := make([]domain.CustomerStatus, 0, len(ledger))
	for _, row := range ledger {
		out = append(out, domain.CustomerStatus{
			BillingDayLimit: row.BillingDayLimit,
			CustomerName:    row.CustomerName,
			ForecastAmount:  row.ForecastAmount,
			RealizedAmount:  row.RealizedAmount,
			Status:          ClassifyRow(row, refDay),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dayOrHigh(out[i].BillingDayLimit), dayOrHigh(out[j].BillingDayLimit)
		if di != dj {
			return di < dj
		}
		return out[i].Status < out[j].Status
	})

	return out
}

// alignPreviousDate maps the reference day into the previous month, clamping
// to the previous month's last day when the month is shorter.
func alignPreviousDate(ref, previousStart, previousEnd time.Time) time.Time {
	aligned := previousStart.AddDate(0, 0, ref.Day()-1)
	if aligned.Month() != previousStart.Month() {
		return previousEnd
	}
	return aligned
}

// sumRealized totals realized amounts over the inclusive [start, end] window.
func sumRealized(ledger domain.Ledger, start, end time.Time) float64 {
	total := 0.0
	for _, row := range ledger {
		if inWindow(row.EmissionDate, start, end) {
			total += row.RealizedAmount
		}
	}
	return total
}

// dailySeries groups the window's rows by day of month and returns the
// ascending cumulative series, one point per distinct emission day.
func dailySeries(ledger domain.Ledger, start, end time.Time) []domain.DailyPoint {
	perDay := make(map[int]float64)
	for _, row := range ledger {
		if inWindow(row.EmissionDate, start, end) {
			perDay[row.EmissionDate.Day()] += row.RealizedAmount
		}
	}

	days := make([]int, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Ints(days)

	series := make([]domain.DailyPoint, 0, len(days))
	running := 0.0
	for _, day := range days {
		running += perDay[day]
		series = append(series, domain.DailyPoint{Day: day, Cumulative: running})
	}
	return series
}

// countOverdue counts rows with nothing billed whose window elapsed before
// the reference day. The caller scopes the ledger to the reference month's
// sheet first.
func countOverdue(ledger domain.Ledger, refDay int) int {
	count := 0
	for _, row := range ledger {
		if row.RealizedAmount <= 0 && row.BillingDayLimit != nil && *row.BillingDayLimit < refDay {
			count++
		}
	}
	return count
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}

func dayOrHigh(d *int) int {
	if d == nil {
		return 32
	}
	return *d
}
