package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faturacli/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func ledgerRow(sheet string, date time.Time, realized, forecast float64, limit *int, customer string) domain.LedgerRow {
	return domain.LedgerRow{
		EmissionDate:    date,
		BillingDayLimit: limit,
		RealizedAmount:  realized,
		ForecastAmount:  forecast,
		CustomerName:    customer,
		SourceSheet:     sheet,
	}
}

func TestComputeMetrics(t *testing.T) {
	ledger := domain.Ledger{
		// Current month, inside the MTD window.
		ledgerRow("Fevereiro 2026", day(2026, 2, 3), 100, 0, intPtr(10), "ACME"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 8), 50, 0, intPtr(12), "BETA"),
		// Current month, after the reference day: excluded from the
		// accumulated total but present in the daily series.
		ledgerRow("Fevereiro 2026", day(2026, 2, 20), 999, 0, intPtr(25), "GAMA"),
		// Unbilled row whose window elapsed before day 9.
		ledgerRow("Fevereiro 2026", day(2026, 2, 1), 0, 400, intPtr(5), "DELTA"),
		// Previous month.
		ledgerRow("Janeiro 2026", day(2026, 1, 2), 70, 0, intPtr(10), "ACME"),
		ledgerRow("Janeiro 2026", day(2026, 1, 9), 50, 0, intPtr(12), "BETA"),
		ledgerRow("Janeiro 2026", day(2026, 1, 25), 80, 0, intPtr(28), "GAMA"),
	}

	m := ComputeMetrics(ledger, day(2026, 2, 9))

	assert.Equal(t, day(2026, 2, 9), m.ReferenceDate)
	assert.Equal(t, day(2026, 1, 9), m.AlignedPreviousDate)
	assert.InDelta(t, 150.0, m.CurrentAccumulated, 1e-9)
	assert.InDelta(t, 120.0, m.PreviousAccumulated, 1e-9)
	assert.InDelta(t, 200.0, m.GoalTotal, 1e-9)
	assert.InDelta(t, 30.0, m.Difference, 1e-9)
	assert.InDelta(t, 25.0, m.PercentDifference, 1e-9)
	assert.InDelta(t, 75.0, m.GoalProgressPercent, 1e-9)
	assert.Equal(t, 1, m.OverdueCount)

	// The current series covers the whole month, cumulatively.
	require.Len(t, m.CurrentDailySeries, 4)
	assert.Equal(t, domain.DailyPoint{Day: 1, Cumulative: 0}, m.CurrentDailySeries[0])
	assert.Equal(t, domain.DailyPoint{Day: 3, Cumulative: 100}, m.CurrentDailySeries[1])
	assert.Equal(t, domain.DailyPoint{Day: 8, Cumulative: 150}, m.CurrentDailySeries[2])
	assert.Equal(t, domain.DailyPoint{Day: 20, Cumulative: 1149}, m.CurrentDailySeries[3])

	require.Len(t, m.PreviousDailySeries, 3)
	assert.Equal(t, domain.DailyPoint{Day: 25, Cumulative: 200}, m.PreviousDailySeries[2])
}

func TestComputeMetricsAlignedDateClamp(t *testing.T) {
	tests := []struct {
		name    string
		ref     time.Time
		aligned time.Time
	}{
		{
			name:    "day 31 against 28-day february",
			ref:     day(2026, 3, 31),
			aligned: day(2026, 2, 28),
		},
		{
			name:    "day 31 against 30-day april",
			ref:     day(2026, 5, 31),
			aligned: day(2026, 4, 30),
		},
		{
			name:    "day 29 against leap february",
			ref:     day(2024, 3, 29),
			aligned: day(2024, 2, 29),
		},
		{
			name:    "january maps into previous year",
			ref:     day(2026, 1, 15),
			aligned: day(2025, 12, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(domain.Ledger{}, tt.ref)
			assert.Equal(t, tt.aligned, m.AlignedPreviousDate)
		})
	}
}

func TestComputeMetricsZeroGuards(t *testing.T) {
	// Nothing billed in the previous month: ratios stay at zero instead of
	// dividing by zero.
	ledger := domain.Ledger{
		ledgerRow("Fevereiro 2026", day(2026, 2, 3), 100, 0, nil, "ACME"),
	}

	m := ComputeMetrics(ledger, day(2026, 2, 9))

	assert.InDelta(t, 100.0, m.CurrentAccumulated, 1e-9)
	assert.InDelta(t, 0.0, m.PreviousAccumulated, 1e-9)
	assert.InDelta(t, 0.0, m.PercentDifference, 1e-9)
	assert.InDelta(t, 0.0, m.GoalProgressPercent, 1e-9)
	assert.InDelta(t, 100.0, m.Difference, 1e-9)
}

func TestComputeMetricsGoalCoversFullPreviousMonth(t *testing.T) {
	// Rows after the aligned day still count toward the goal.
	ledger := domain.Ledger{
		ledgerRow("Janeiro 2026", day(2026, 1, 5), 100, 0, nil, "ACME"),
		ledgerRow("Janeiro 2026", day(2026, 1, 28), 900, 0, nil, "BETA"),
	}

	m := ComputeMetrics(ledger, day(2026, 2, 9))

	assert.InDelta(t, 100.0, m.PreviousAccumulated, 1e-9)
	assert.InDelta(t, 1000.0, m.GoalTotal, 1e-9)
	assert.GreaterOrEqual(t, m.GoalTotal, m.PreviousAccumulated)
}

func TestDailySeriesMonotone(t *testing.T) {
	ledger := domain.Ledger{
		ledgerRow("Fevereiro 2026", day(2026, 2, 10), 5, 0, nil, "A"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 2), 10, 0, nil, "B"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 2), 20, 0, nil, "C"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 25), 1, 0, nil, "D"),
	}

	series := dailySeries(ledger, day(2026, 2, 1), day(2026, 2, 28))
	require.Len(t, series, 3)
	for i := 1; i < len(series); i++ {
		assert.Greater(t, series[i].Day, series[i-1].Day)
		assert.GreaterOrEqual(t, series[i].Cumulative, series[i-1].Cumulative)
	}
	assert.InDelta(t, 36.0, series[len(series)-1].Cumulative, 1e-9)
}

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name     string
		row      domain.LedgerRow
		refDay   int
		expected domain.BillingStatus
	}{
		{
			name:     "billed is completed even when overdue",
			row:      domain.LedgerRow{RealizedAmount: 10, BillingDayLimit: intPtr(2)},
			refDay:   9,
			expected: domain.StatusCompleted,
		},
		{
			name:     "no billing day",
			row:      domain.LedgerRow{ForecastAmount: 100},
			refDay:   9,
			expected: domain.StatusNoWindow,
		},
		{
			name:     "window elapsed",
			row:      domain.LedgerRow{ForecastAmount: 100, BillingDayLimit: intPtr(5)},
			refDay:   9,
			expected: domain.StatusOverdue,
		},
		{
			name:     "window open",
			row:      domain.LedgerRow{ForecastAmount: 100, BillingDayLimit: intPtr(15)},
			refDay:   9,
			expected: domain.StatusOnTime,
		},
		{
			name:     "limit equal to reference day is still on time",
			row:      domain.LedgerRow{ForecastAmount: 100, BillingDayLimit: intPtr(9)},
			refDay:   9,
			expected: domain.StatusOnTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRow(tt.row, tt.refDay))
		})
	}
}

func TestClassifyLedgerOrdering(t *testing.T) {
	ledger := domain.Ledger{
		ledgerRow("Fevereiro 2026", day(2026, 2, 1), 0, 10, nil, "SEM JANELA"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 1), 0, 10, intPtr(20), "TARDE"),
		ledgerRow("Fevereiro 2026", day(2026, 2, 1), 0, 10, intPtr(3), "CEDO"),
	}

	statuses := ClassifyLedger(ledger, 9)
	require.Len(t, statuses, 3)
	assert.Equal(t, "CEDO", statuses[0].CustomerName)
	assert.Equal(t, domain.StatusOverdue, statuses[0].Status)
	assert.Equal(t, "TARDE", statuses[1].CustomerName)
	assert.Equal(t, domain.StatusOnTime, statuses[1].Status)
	assert.Equal(t, "SEM JANELA", statuses[2].CustomerName)
	assert.Equal(t, domain.StatusNoWindow, statuses[2].Status)
}
