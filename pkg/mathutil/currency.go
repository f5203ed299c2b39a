// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/leaseworks/lease-economics/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons and for the opt-in cents mode.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// EffectiveMonthlyRate converts an effective annual rate in percent units
// (8.0 = 8%) to the equivalent monthly compounding rate as a decimal:
// (1+r)^(1/12) - 1. Discounting and amortization both use this conversion;
// they must never diverge.
func EffectiveMonthlyRate(annualPercent float64) float64 {
	if annualPercent == 0 {
		return 0
	}
	r := annualPercent / constants.PercentageMultiplier
	return math.Pow(1+r, 1.0/constants.MonthsPerYear) - 1
}
