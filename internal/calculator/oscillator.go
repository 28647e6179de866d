package calculator

import (
	"math"

	"StockAnalyzer/internal/model"
)

// StochasticK computes the stochastic oscillator %K over window:
// 100 * (close - lowest low) / (highest high - lowest low).
// Windows with a flat range are undefined.
func StochasticK(bars []model.OHLCV, window int) []float64 {
	hh := RollingHigh(bars, window)
	ll := RollingLow(bars, window)
	out := undefined(len(bars))
	for i, b := range bars {
		span := hh[i] - ll[i]
		if math.IsNaN(span) || span == 0 {
			continue
		}
		out[i] = 100 * (b.Close - ll[i]) / span
	}
	return out
}

// WilliamsR computes Williams %R over window:
// -100 * (highest high - close) / (highest high - lowest low).
func WilliamsR(bars []model.OHLCV, window int) []float64 {
	hh := RollingHigh(bars, window)
	ll := RollingLow(bars, window)
	out := undefined(len(bars))
	for i, b := range bars {
		span := hh[i] - ll[i]
		if math.IsNaN(span) || span == 0 {
			continue
		}
		out[i] = -100 * (hh[i] - b.Close) / span
	}
	return out
}
