package calculator

import (
	"math"

	"StockAnalyzer/internal/model"
)

// TrueRange returns the true range of each bar. The first bar has no previous
// close, so its range is High - Low.
func TrueRange(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prev := bars[i-1].Close
			tr = math.Max(tr, math.Max(math.Abs(b.High-prev), math.Abs(b.Low-prev)))
		}
		out[i] = tr
	}
	return out
}

// ATR is the simple rolling mean of the true range over window.
func ATR(bars []model.OHLCV, window int) []float64 {
	return SMA(TrueRange(bars), window)
}
