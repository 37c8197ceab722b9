package body

import (
	"math"

	"github.com/shopspring/decimal"
)

// NavyBodyFat estimates body fat percent from the US Navy circumference
// method for men. All lengths are in inches. The result is clamped to
// [0, 100] and rounded to one decimal.
func NavyBodyFat(waist, neck, height float64) float64 {
	bf := 86.010*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
	return Round1(math.Max(0, math.Min(100, bf)))
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
