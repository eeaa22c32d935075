package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the monetary rounding unit used when the caller does
// not supply one.
var DefaultPrecision = decimal.New(1, -2) // 0.01

var two = decimal.NewFromInt(2)

// StandardizeAmount normalizes a raw amount string before decimal parsing:
// whitespace is trimmed and a comma decimal separator becomes a period.
func StandardizeAmount(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
}

// ParseAmount parses a raw amount string after standardization. An empty
// string parses as zero, mirroring exports that leave the unused side of a
// debit/credit pair blank.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := StandardizeAmount(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount '%s': %w", raw, err)
	}
	return d, nil
}

// IsZeroWithin reports whether amount is zero within the given rounding
// precision: |amount| < precision/2.
func IsZeroWithin(amount, precision decimal.Decimal) bool {
	if precision.Sign() <= 0 {
		precision = DefaultPrecision
	}
	return amount.Abs().Cmp(precision.Div(two)) < 0
}
