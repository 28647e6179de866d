package calculator

import (
	"math"

	"StockAnalyzer/internal/model"
)

// MACD computes the MACD line (EMA(fast) - EMA(slow)), its signal line
// (EMA of the defined part of the MACD line) and the histogram
// (line - signal). All three series have the length of values.
func MACD(values []float64, fast, slow, signal int) model.MACD {
	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	line := make([]float64, len(values))
	for i := range values {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMA(line, signal)

	hist := make([]float64, len(values))
	for i := range values {
		if math.IsNaN(line[i]) || math.IsNaN(signalLine[i]) {
			hist[i] = math.NaN()
			continue
		}
		hist[i] = line[i] - signalLine[i]
	}
	return model.MACD{Line: line, Signal: signalLine, Histogram: hist}
}
