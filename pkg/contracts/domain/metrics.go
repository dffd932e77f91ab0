package domain

import (
	"time"
)

// DailyPoint is one point of a cumulative daily billing series:
// the day of month and the running total through that day.
type DailyPoint struct {
	Day        int     `json:"day" validate:"min=1,max=31"`
	Cumulative float64 `json:"cumulative" validate:"min=0"`
}

// BillingMetrics holds the comparative month-to-date metrics computed for a
// reference date. All values are recomputed from the ledger on every request;
// nothing here is persisted or cached.
type BillingMetrics struct {
	ReferenceDate       time.Time    `json:"reference_date"`
	AlignedPreviousDate time.Time    `json:"aligned_previous_date"`
	CurrentAccumulated  float64      `json:"current_accumulated" validate:"min=0"`
	PreviousAccumulated float64      `json:"previous_accumulated" validate:"min=0"`
	GoalTotal           float64      `json:"goal_total" validate:"min=0"`
	Difference          float64      `json:"difference"`
	PercentDifference   float64      `json:"percent_difference"`
	GoalProgressPercent float64      `json:"goal_progress_percent"`
	OverdueCount        int          `json:"overdue_count" validate:"min=0"`
	CurrentDailySeries  []DailyPoint `json:"current_daily_series"`
	PreviousDailySeries []DailyPoint `json:"previous_daily_series"`
}

// CustomerStatus is one row of the per-customer status table for the
// reference month's sheet.
type CustomerStatus struct {
	BillingDayLimit *int          `json:"billing_day_limit,omitempty"`
	CustomerName    string        `json:"customer_name"`
	ForecastAmount  float64       `json:"forecast_amount"`
	RealizedAmount  float64       `json:"realized_amount"`
	Status          BillingStatus `json:"status"`
}
