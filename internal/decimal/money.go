// Package decimal wraps shopspring/decimal with the money helpers the store
// and reports need. Amounts travel as strings until they reach this package;
// MXN keeps two decimal places.
package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromString parses a decimal amount from its string form
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat creates a decimal from a stored float column, rounded to cents
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// TotalDeductions computes imss + isr, rounded to cents
func TotalDeductions(imss, isr decimal.Decimal) decimal.Decimal {
	return imss.Add(isr).Round(2)
}

// NetIncome computes gross - deductions, rounded to cents
func NetIncome(gross, deductions decimal.Decimal) decimal.Decimal {
	return gross.Sub(deductions).Round(2)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
