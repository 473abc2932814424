package money

import (
	"github.com/shopspring/decimal"
)

// Format renders minor units as a fixed two-decimal major-unit string,
// e.g. 1050 -> "10.50". Locale-specific grouping is left to the
// presentation layer.
func Format(cents int64) string {
	return decimal.NewFromInt(cents).
		Div(decimal.NewFromInt(100)).
		StringFixed(2)
}
