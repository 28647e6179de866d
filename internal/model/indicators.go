package model

import (
	"math"
	"strconv"
)

// Series is an indicator series aligned with a bar series. Undefined entries
// are NaN and encode as JSON null.
type Series []float64

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	buf := make([]byte, 0, 2+len(s)*8)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
	}
	return append(buf, ']'), nil
}

// Defined reports the number of defined entries.
func (s Series) Defined() int {
	n := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Last returns the last entry and whether it is defined.
func (s Series) Last() (float64, bool) {
	if len(s) == 0 || math.IsNaN(s[len(s)-1]) {
		return 0, false
	}
	return s[len(s)-1], true
}

// MACD holds the three MACD series.
type MACD struct {
	Line      Series `json:"line"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// BollingerBands holds the three band series.
type BollingerBands struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}

// IndicatorSet holds every indicator computed for one request.
type IndicatorSet struct {
	SMAFast     Series         `json:"sma_fast"`
	SMASlow     Series         `json:"sma_slow"`
	EMAFast     Series         `json:"ema_fast"`
	EMASlow     Series         `json:"ema_slow"`
	RSI         Series         `json:"rsi"`
	MACD        MACD           `json:"macd"`
	Bollinger   BollingerBands `json:"bollinger"`
	VolumeSMA   Series         `json:"volume_sma"`
	VolumeRatio Series         `json:"volume_ratio"`
	ATR         Series         `json:"atr"`
	StochasticK Series         `json:"stochastic_k"`
	WilliamsR   Series         `json:"williams_r"`
}

// IndicatorParams configures the default indicator set.
type IndicatorParams struct {
	SMAFast      int     `yaml:"sma_fast" json:"sma_fast"`
	SMASlow      int     `yaml:"sma_slow" json:"sma_slow"`
	RSIPeriod    int     `yaml:"rsi_period" json:"rsi_period"`
	MACDFast     int     `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow     int     `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal   int     `yaml:"macd_signal" json:"macd_signal"`
	BBPeriod     int     `yaml:"bb_period" json:"bb_period"`
	BBStdDev     float64 `yaml:"bb_std_dev" json:"bb_std_dev"`
	VolumePeriod int     `yaml:"volume_period" json:"volume_period"`
	ATRPeriod    int     `yaml:"atr_period" json:"atr_period"`
	StochPeriod  int     `yaml:"stoch_period" json:"stoch_period"`
}

// DefaultIndicatorParams returns the conventional periods.
func DefaultIndicatorParams() IndicatorParams {
	return IndicatorParams{
		SMAFast:      20,
		SMASlow:      50,
		RSIPeriod:    14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		BBPeriod:     20,
		BBStdDev:     2,
		VolumePeriod: 20,
		ATRPeriod:    14,
		StochPeriod:  14,
	}
}
