package utils

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.]`)

// CoerceDecimal turns a raw measure cell into a decimal amount. Currency
// symbols and thousands separators are stripped first ("$1,234.56" becomes
// 1234.56); an empty or still unparseable result coerces to zero. Measures
// are allowed to be approximate - a garbled cell must not abort an entire
// multi-thousand-row import.
func CoerceDecimal(raw string) decimal.Decimal {
	cleaned := nonNumericRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceInt applies the same leniency for integer measures (unit counts).
// Fractional survivors truncate toward zero.
func CoerceInt(raw string) int64 {
	return CoerceDecimal(raw).IntPart()
}
