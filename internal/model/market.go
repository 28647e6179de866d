package model

import (
	"sort"
	"time"
)

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the raw price history of one symbol.
type PriceSeries struct {
	Symbol         string    `json:"symbol"`
	ProviderSymbol string    `json:"provider_symbol"`
	Source         string    `json:"source"`
	Info           StockInfo `json:"info"`
	Bars           []OHLCV   `json:"bars"`
	FetchedAt      time.Time `json:"fetched_at"`
	Cached         bool      `json:"cached"`
}

// StockInfo describes the instrument behind a series.
type StockInfo struct {
	Symbol         string `json:"symbol"`
	ProviderSymbol string `json:"provider_symbol"`
	Name           string `json:"name"`
	Exchange       string `json:"exchange"`
	Currency       string `json:"currency"`
	InstrumentType string `json:"instrument_type"`
	Timezone       string `json:"timezone"`
}

// Closes extracts the close prices of bars.
func Closes(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volumes of bars.
func Volumes(bars []OHLCV) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// Normalize sorts bars by time and removes duplicates so that dates are
// strictly increasing. When two bars fall on the same calendar day in loc the
// later one wins. The input slice is not modified.
func Normalize(bars []OHLCV, loc *time.Location) []OHLCV {
	if len(bars) == 0 {
		return []OHLCV{}
	}
	if loc == nil {
		loc = time.UTC
	}
	sorted := make([]OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]OHLCV, 0, len(sorted))
	for _, b := range sorted {
		if n := len(out); n > 0 && sameDay(out[n-1].Time, b.Time, loc) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
