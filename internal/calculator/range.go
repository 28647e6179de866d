package calculator

import (
	"math"

	"StockAnalyzer/internal/model"
)

// RollingHigh returns the highest High over the trailing window at each index.
func RollingHigh(bars []model.OHLCV, window int) []float64 {
	return rolling(bars, window, math.Inf(-1), func(acc float64, b model.OHLCV) float64 {
		return math.Max(acc, b.High)
	})
}

// RollingLow returns the lowest Low over the trailing window at each index.
func RollingLow(bars []model.OHLCV, window int) []float64 {
	return rolling(bars, window, math.Inf(1), func(acc float64, b model.OHLCV) float64 {
		return math.Min(acc, b.Low)
	})
}

func rolling(bars []model.OHLCV, window int, init float64, fold func(float64, model.OHLCV) float64) []float64 {
	out := undefined(len(bars))
	if window <= 0 || window > len(bars) {
		return out
	}
	for i := window - 1; i < len(bars); i++ {
		acc := init
		for j := i - window + 1; j <= i; j++ {
			acc = fold(acc, bars[j])
		}
		out[i] = acc
	}
	return out
}

// PeriodRange scans all bars and returns the highest high and the lowest low.
func PeriodRange(bars []model.OHLCV) (high, low float64, ok bool) {
	if len(bars) == 0 {
		return 0, 0, false
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, true
}

// Position returns where current sits within [low, high], clamped to 0..1.
// A flat range yields 0.5.
func Position(current, high, low float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (current - low) / (high - low)
	return math.Max(0, math.Min(1, pos))
}
