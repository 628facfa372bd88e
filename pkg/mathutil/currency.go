// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// ApplyRate projects an amount forward by an accumulated rate expressed as a
// fraction: amount * (1 + rate).
func ApplyRate(amount, rate float64) float64 {
	return amount * (1 + rate)
}

// RemoveRate is the inverse of ApplyRate: amount / (1 + rate).
func RemoveRate(amount, rate float64) float64 {
	return amount / (1 + rate)
}

// RatioPercent returns (current/base - 1) * 100.
func RatioPercent(current, base float64) float64 {
	return (current/base - 1) * constants.PercentageMultiplier
}

// ChangePercent returns (current - base) / base * 100.
func ChangePercent(current, base float64) float64 {
	return (current - base) / base * constants.PercentageMultiplier
}
