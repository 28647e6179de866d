package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func quadratic(n int, sign float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 200 + sign*0.05*float64(i*i)
	}
	return out
}

func evaluate(closes []float64) model.Outlook {
	bars := barsFromCloses(closes)
	return Evaluate(bars, Compute(bars, model.DefaultIndicatorParams()))
}

func TestEvaluate_InsufficientData(t *testing.T) {
	out := evaluate(quadratic(19, 1))

	assert.False(t, out.Sufficient)
	assert.Equal(t, "Insufficient data", out.Method)
	assert.Zero(t, out.Prediction)
}

func TestEvaluate_AcceleratingRally(t *testing.T) {
	closes := quadratic(60, 1)
	out := evaluate(closes)

	require.True(t, out.Sufficient)
	assert.Equal(t, Bullish, out.Trend)
	assert.Equal(t, Above, out.PriceVsSMA)
	assert.Equal(t, Bullish, out.MACDSignal)
	assert.Equal(t, Overbought, out.RSISignal)
	assert.Equal(t, 0.7, out.Confidence)
	assert.Equal(t, Round2(closes[59]*1.01), out.Prediction)
}

func TestEvaluate_AcceleratingSelloff(t *testing.T) {
	closes := quadratic(60, -1)
	out := evaluate(closes)

	require.True(t, out.Sufficient)
	assert.Equal(t, Bearish, out.Trend)
	assert.Equal(t, Below, out.PriceVsSMA)
	assert.Equal(t, Bearish, out.MACDSignal)
	assert.Equal(t, Oversold, out.RSISignal)
	assert.Equal(t, 0.7, out.Confidence)
	assert.Equal(t, Round2(closes[59]*0.99), out.Prediction)
}

func TestEvaluate_ShortFlatHistory(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	out := evaluate(closes)

	// SMA50 and the MACD signal are not defined yet; a flat series has no
	// losses so RSI reads 100.
	assert.Equal(t, Neutral, out.Trend)
	assert.Equal(t, Neutral, out.MACDSignal)
	assert.Equal(t, Below, out.PriceVsSMA)
	assert.Equal(t, Overbought, out.RSISignal)
	assert.Equal(t, 0.6, out.Confidence)
	assert.Equal(t, Round2(50*0.995), out.Prediction)
}

func TestSummarize(t *testing.T) {
	bars := []model.OHLCV{
		{Close: 100, High: 101, Low: 95, Volume: 1000},
		{Close: 110, High: 112, Low: 104, Volume: 2000},
		{Close: 99, High: 108, Low: 98, Volume: 3000},
	}
	s := Summarize(bars)

	assert.Equal(t, -1.0, s.TotalReturn)
	assert.Equal(t, 224.5, s.Volatility)
	assert.Equal(t, 112.0, s.MaxPrice)
	assert.Equal(t, 95.0, s.MinPrice)
	assert.Equal(t, 17.0, s.PriceRange)
	assert.Equal(t, 2000.0, s.AvgVolume)

	assert.Equal(t, model.SummaryStats{}, Summarize(nil))
}

func TestQuote(t *testing.T) {
	assert.Nil(t, Quote(nil, "INR"))

	bars := barsFromCloses([]float64{100, 110, 99})
	q := Quote(bars, "INR")
	require.NotNil(t, q)
	assert.Equal(t, 99.0, q.LastPrice)
	assert.Equal(t, 110.0, q.PreviousClose)
	assert.Equal(t, -11.0, q.Change)
	assert.Equal(t, -10.0, q.ChangePercent)
	assert.Equal(t, "INR", q.Currency)
	assert.Equal(t, bars[2].Time, q.Timestamp)

	single := Quote(bars[:1], "USD")
	assert.Zero(t, single.Change)
	assert.Zero(t, single.ChangePercent)
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.235, 1.24},
		{-1.235, -1.24},
		{2, 2},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(tc.in), "in=%v", tc.in)
	}
}

func TestPosition(t *testing.T) {
	assert.Equal(t, 0.5, Position(10, 10, 10))
	assert.Equal(t, 0.25, Position(12.5, 20, 10))
	assert.Equal(t, 1.0, Position(30, 20, 10))
	assert.Equal(t, 0.0, Position(5, 20, 10))
}
