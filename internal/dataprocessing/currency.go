package dataprocessing

import (
	"strconv"
	"strings"
)

// ParseAmount converts a raw currency cell into a float64. It never fails:
// empty cells, "-" placeholders and unparsable text all normalize to 0.0.
// That lossy tolerance is part of the contract; malformed cells are treated
// as zero-value line items rather than aborting the whole sheet.
//
// Formatting follows the Brazilian convention used in the source workbooks:
// when both "." and "," are present, "." is the thousands separator and ","
// the decimal separator ("1.234,56" -> 1234.56); a lone "," is the decimal
// separator ("10,00" -> 10.0). A leading "R$" and any spaces are stripped.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return 0.0
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return value
}
