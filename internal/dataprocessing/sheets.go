package dataprocessing

import (
	"fmt"
	"strings"
	"time"
)

// monthNames maps lower-cased Portuguese month names to their calendar month.
// "marco" is accepted alongside "março" because sheet tabs frequently lose
// the cedilla when workbooks pass through other tools.
var monthNames = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"marco":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// canonicalMonthNames indexes display names by calendar month for building
// sheet names from a reference date.
var canonicalMonthNames = [...]string{
	time.January:   "Janeiro",
	time.February:  "Fevereiro",
	time.March:     "Março",
	time.April:     "Abril",
	time.May:       "Maio",
	time.June:      "Junho",
	time.July:      "Julho",
	time.August:    "Agosto",
	time.September: "Setembro",
	time.October:   "Outubro",
	time.November:  "Novembro",
	time.December:  "Dezembro",
}

// MatchMonthlySheet reports whether a sheet name identifies a monthly billing
// sheet. The trimmed name must be exactly "<MonthName> <4-digit-year>",
// case-insensitive. Anything else (summary tabs, "Pendências",
// "Inadimplentes", ...) is rejected even when it contains digits.
func MatchMonthlySheet(name string) (time.Month, int, bool) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) != 2 {
		return 0, 0, false
	}

	month, ok := monthNames[strings.ToLower(fields[0])]
	if !ok {
		return 0, 0, false
	}

	if len(fields[1]) != 4 {
		return 0, 0, false
	}
	year := 0
	for _, r := range fields[1] {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
		year = year*10 + int(r-'0')
	}

	return month, year, true
}

// MonthSheetName returns the canonical sheet name for the month of t,
// e.g. "Fevereiro 2026". Used to scope per-month views of the ledger.
func MonthSheetName(t time.Time) string {
	return fmt.Sprintf("%s %d", canonicalMonthNames[t.Month()], t.Year())
}
