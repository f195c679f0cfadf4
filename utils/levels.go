// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Peak returns max |x|, 0 for an empty slice.
func Peak(x []float64) float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root mean square of x, 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// AmplitudeToDB returns 20*log10(x + eps).
func AmplitudeToDB(x, eps float64) float64 {
	return 20 * math.Log10(x+eps)
}

// PowerToDB returns 10*log10(x + eps).
func PowerToDB(x, eps float64) float64 {
	return 10 * math.Log10(x+eps)
}

// DBToGain converts decibels to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Round rounds x to the given number of decimal places, halves to even.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

// NormalizePeak returns a copy of x scaled so its peak equals ceiling. x is
// returned unchanged (copied) when its peak is zero.
func NormalizePeak(x []float64, ceiling float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	peak := Peak(x)
	if peak == 0 {
		return out
	}

	for i := range out {
		out[i] = out[i] / peak * ceiling
	}
	return out
}
