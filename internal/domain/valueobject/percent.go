package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// toDecimal converts v, treating NaN and infinities as zero.
func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// RoundPercent rounds a percentage to an integer, halves away from zero
// (62.5 becomes 63). Used at the response boundary only.
func RoundPercent(pct float64) int {
	return int(toDecimal(pct).Round(0).IntPart())
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(toDecimal(v))
	}
	mean, _ := sum.Div(decimal.NewFromInt(int64(len(values)))).Float64()
	return mean
}

// Sum adds values with decimal precision, so entered figures such as 10.6 do
// not accumulate binary floating point drift.
func Sum(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(toDecimal(v))
	}
	total, _ := sum.Float64()
	return total
}
