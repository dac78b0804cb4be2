package indicators

import (
	"math"

	apperrors "ta-engine/internal/errors"
)

// Sentinel errors shared by all indicator calculations.
var (
	ErrInsufficientData = apperrors.ErrInsufficientData
	ErrInvalidParameter = apperrors.ErrInvalidParameter
)

// sum calculates the sum of a slice of float64.
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// mean calculates the arithmetic mean of a slice of float64.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// stdDev calculates the population standard deviation of a slice of float64.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// highest returns the highest value in a slice.
func highest(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	h := values[0]
	for _, v := range values[1:] {
		if v > h {
			h = v
		}
	}
	return h
}

// lowest returns the lowest value in a slice.
func lowest(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	l := values[0]
	for _, v := range values[1:] {
		if v < l {
			l = v
		}
	}
	return l
}

// rollingMean computes the trailing mean over each full window. The output
// has len(values)-period+1 entries; entry i covers values[i : i+period].
func rollingMean(values []float64, period int) []float64 {
	n := len(values)
	out := make([]float64, 0, n-period+1)
	windowSum := sum(values[:period])
	out = append(out, windowSum/float64(period))
	for i := period; i < n; i++ {
		windowSum += values[i] - values[i-period]
		out = append(out, windowSum/float64(period))
	}
	return out
}

// expMean computes an exponential moving average seeded with the simple
// mean of the first period values and multiplier 2/(period+1). The output
// has len(values)-period+1 entries, starting at the same index as
// rollingMean so the two series are calendar-aligned.
func expMean(values []float64, period int) []float64 {
	n := len(values)
	out := make([]float64, 0, n-period+1)
	prev := mean(values[:period])
	out = append(out, prev)
	multiplier := 2.0 / float64(period+1)
	for i := period; i < n; i++ {
		prev = (values[i]-prev)*multiplier + prev
		out = append(out, prev)
	}
	return out
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
