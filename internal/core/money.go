// Amount parsing and formatting. Amounts are exact decimals; direction is
// carried by a transaction's Kind, never by the numeric sign.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an amount magnitude. It accepts
// both dot and comma decimal separators and rejects negative values, since
// direction lives in the Kind field.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseSignedAmount parses a decimal string that may legitimately be
// negative, e.g. a rollover adjustment entered by hand.
func ParseSignedAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount as a plain decimal number: no currency
// symbol, no thousands separator. Used by the CSV export surface.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// Percentage computes part/whole*100 as a float for display. A zero or
// negative whole yields 0 rather than a division error.
func Percentage(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
