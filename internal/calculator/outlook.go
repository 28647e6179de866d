package calculator

import "StockAnalyzer/internal/model"

const (
	outlookMethod  = "Technical Analysis (SMA + RSI + MACD)"
	outlookMinBars = 20

	rsiOversold   = 30
	rsiOverbought = 70
)

// Signal labels.
const (
	Bullish    = "Bullish"
	Bearish    = "Bearish"
	Neutral    = "Neutral"
	Oversold   = "Oversold"
	Overbought = "Overbought"
	Above      = "Above"
	Below      = "Below"
	Unknown    = "Unknown"
)

// Evaluate projects the next close from the latest indicator values. It is a
// rule-of-thumb heuristic, not a model.
func Evaluate(bars []model.OHLCV, ind model.IndicatorSet) model.Outlook {
	if len(bars) < outlookMinBars {
		return model.Outlook{Method: "Insufficient data"}
	}
	last := bars[len(bars)-1].Close

	trend := Neutral
	smaFast, fastOK := ind.SMAFast.Last()
	if smaSlow, ok := ind.SMASlow.Last(); ok && fastOK {
		trend = Bearish
		if smaFast > smaSlow {
			trend = Bullish
		}
	}

	rsiSignal := Neutral
	if rsi, ok := ind.RSI.Last(); ok {
		switch {
		case rsi < rsiOversold:
			rsiSignal = Oversold
		case rsi > rsiOverbought:
			rsiSignal = Overbought
		}
	}

	macdSignal := Neutral
	line, lineOK := ind.MACD.Line.Last()
	if sig, ok := ind.MACD.Signal.Last(); ok && lineOK {
		macdSignal = Bearish
		if line > sig {
			macdSignal = Bullish
		}
	}

	priceVsSMA := Unknown
	if fastOK {
		priceVsSMA = Below
		if last > smaFast {
			priceVsSMA = Above
		}
	}

	prediction, confidence := last, 0.5
	switch {
	case trend == Bullish && priceVsSMA == Above && macdSignal == Bullish:
		prediction, confidence = last*1.01, 0.7
	case trend == Bearish && priceVsSMA == Below && macdSignal == Bearish:
		prediction, confidence = last*0.99, 0.7
	case rsiSignal == Oversold:
		prediction, confidence = last*1.005, 0.6
	case rsiSignal == Overbought:
		prediction, confidence = last*0.995, 0.6
	}

	return model.Outlook{
		Sufficient: true,
		Prediction: Round2(prediction),
		Trend:      trend,
		RSISignal:  rsiSignal,
		MACDSignal: macdSignal,
		PriceVsSMA: priceVsSMA,
		Confidence: confidence,
		Method:     outlookMethod,
	}
}
