package model

import "time"

// Quote is the latest price snapshot of a symbol.
type Quote struct {
	LastPrice     float64   `json:"last_price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        float64   `json:"volume"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

// SummaryStats summarises a bar series.
type SummaryStats struct {
	TotalReturn float64 `json:"total_return"` // percent
	Volatility  float64 `json:"volatility"`   // annualised percent
	MaxPrice    float64 `json:"max_price"`
	MinPrice    float64 `json:"min_price"`
	PriceRange  float64 `json:"price_range"`
	AvgVolume   float64 `json:"avg_volume"`
}

// Outlook is a naive next-day projection derived from the indicator set.
type Outlook struct {
	Sufficient bool    `json:"sufficient"`
	Prediction float64 `json:"prediction,omitempty"`
	Trend      string  `json:"trend,omitempty"`
	RSISignal  string  `json:"rsi_signal,omitempty"`
	MACDSignal string  `json:"macd_signal,omitempty"`
	PriceVsSMA string  `json:"price_vs_sma,omitempty"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Analysis is the full result of one fetch-compute cycle.
type Analysis struct {
	Symbol     string          `json:"symbol"`
	Days       int             `json:"days"`
	Source     string          `json:"source"`
	Info       StockInfo       `json:"info"`
	Bars       []OHLCV         `json:"bars"`
	Quote      *Quote          `json:"quote,omitempty"`
	Indicators IndicatorSet    `json:"indicators"`
	Params     IndicatorParams `json:"params"`
	Summary    SummaryStats    `json:"summary"`
	Outlook    Outlook         `json:"outlook"`
	FetchedAt  time.Time       `json:"fetched_at"`
	Cached     bool            `json:"cached"`
}
