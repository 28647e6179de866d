package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/model"
)

// TradingDaysPerYear annualises daily volatility.
const TradingDaysPerYear = 252

// Summarize computes summary statistics of bars, rounded to two decimals.
func Summarize(bars []model.OHLCV) model.SummaryStats {
	var s model.SummaryStats
	if len(bars) == 0 {
		return s
	}

	if len(bars) > 1 {
		first, last := bars[0].Close, bars[len(bars)-1].Close
		if first != 0 {
			s.TotalReturn = (last/first - 1) * 100
		}
		returns := make([]float64, 0, len(bars)-1)
		for i := 1; i < len(bars); i++ {
			if prev := bars[i-1].Close; prev != 0 {
				returns = append(returns, bars[i].Close/prev-1)
			}
		}
		if len(returns) > 1 {
			s.Volatility = stdDev(returns, mean(returns)) * math.Sqrt(TradingDaysPerYear) * 100
		}
	}

	s.MaxPrice, s.MinPrice, _ = PeriodRange(bars)
	s.PriceRange = s.MaxPrice - s.MinPrice
	s.AvgVolume = mean(model.Volumes(bars))

	s.TotalReturn = Round2(s.TotalReturn)
	s.Volatility = Round2(s.Volatility)
	s.MaxPrice = Round2(s.MaxPrice)
	s.MinPrice = Round2(s.MinPrice)
	s.PriceRange = Round2(s.PriceRange)
	s.AvgVolume = Round2(s.AvgVolume)
	return s
}

// Quote derives the latest price snapshot from the last two bars.
func Quote(bars []model.OHLCV, currency string) *model.Quote {
	if len(bars) == 0 {
		return nil
	}
	last := bars[len(bars)-1]
	prev := last.Close
	if len(bars) > 1 {
		prev = bars[len(bars)-2].Close
	}
	change := last.Close - prev
	pct := 0.0
	if prev > 0 {
		pct = change / prev * 100
	}
	return &model.Quote{
		LastPrice:     Round2(last.Close),
		PreviousClose: Round2(prev),
		Change:        Round2(change),
		ChangePercent: Round2(pct),
		Open:          Round2(last.Open),
		High:          Round2(last.High),
		Low:           Round2(last.Low),
		Volume:        last.Volume,
		Currency:      currency,
		Timestamp:     last.Time,
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
