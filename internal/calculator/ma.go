package calculator

import "math"

// SMA computes the simple moving average of values over window. Index i holds
// the mean of values[i-window+1..i]; indices before window-1 are NaN. A
// non-positive window or a window longer than values yields an all-NaN series.
func SMA(values []float64, window int) []float64 {
	out := undefined(len(values))
	if window <= 0 || window > len(values) {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// EMA computes the exponential moving average of values with smoothing factor
// 2/(window+1). The first defined value is the SMA of the first window values;
// leading NaNs in values are skipped so EMA can be chained on another
// indicator's output.
func EMA(values []float64, window int) []float64 {
	out := undefined(len(values))
	if window <= 0 {
		return out
	}
	start := firstDefined(values)
	if start < 0 || len(values)-start < window {
		return out
	}

	seed := start + window - 1
	sum := 0.0
	for i := start; i <= seed; i++ {
		sum += values[i]
	}
	prev := sum / float64(window)
	out[seed] = prev

	alpha := 2.0 / float64(window+1)
	for i := seed + 1; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstDefined(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}
