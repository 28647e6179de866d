package calculator

import (
	"math"

	"StockAnalyzer/internal/model"
)

// Bollinger computes Bollinger Bands: the middle band is SMA(window), the
// outer bands are middle +/- k times the rolling sample standard deviation.
// A negative k is treated as its absolute value.
func Bollinger(values []float64, window int, k float64) model.BollingerBands {
	k = math.Abs(k)
	middle := SMA(values, window)
	upper := undefined(len(values))
	lower := undefined(len(values))

	for i, m := range middle {
		if math.IsNaN(m) {
			continue
		}
		sd := stdDev(values[i-window+1:i+1], m)
		upper[i] = m + k*sd
		lower[i] = m - k*sd
	}
	return model.BollingerBands{Upper: upper, Middle: middle, Lower: lower}
}

// stdDev is the sample standard deviation of window around mean.
func stdDev(window []float64, mean float64) float64 {
	if len(window) < 2 {
		return 0
	}
	ss := 0.0
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(window)-1))
}
