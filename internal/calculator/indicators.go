package calculator

import "StockAnalyzer/internal/model"

// Compute derives the full indicator set from bars.
func Compute(bars []model.OHLCV, p model.IndicatorParams) model.IndicatorSet {
	closes := model.Closes(bars)
	volumes := model.Volumes(bars)
	volumeSMA := SMA(volumes, p.VolumePeriod)

	return model.IndicatorSet{
		SMAFast:     SMA(closes, p.SMAFast),
		SMASlow:     SMA(closes, p.SMASlow),
		EMAFast:     EMA(closes, p.MACDFast),
		EMASlow:     EMA(closes, p.MACDSlow),
		RSI:         RSI(closes, p.RSIPeriod),
		MACD:        MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal),
		Bollinger:   Bollinger(closes, p.BBPeriod, p.BBStdDev),
		VolumeSMA:   volumeSMA,
		VolumeRatio: VolumeRatio(volumes, volumeSMA),
		ATR:         ATR(bars, p.ATRPeriod),
		StochasticK: StochasticK(bars, p.StochPeriod),
		WilliamsR:   WilliamsR(bars, p.StochPeriod),
	}
}
