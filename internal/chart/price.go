package chart

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

const dateLayout = "2006-01-02"

func dates(bars []model.OHLCV) []string {
	out := make([]string, len(bars))
	for i, b := range bars {
		out[i] = b.Time.Format(dateLayout)
	}
	return out
}

// PriceChart draws candlesticks with SMAs and Bollinger Bands above a volume
// subplot whose bars are coloured by day direction.
func PriceChart(a *model.Analysis) Figure {
	bars := a.Bars
	x := dates(bars)
	ind := a.Indicators
	p := a.Params

	opens := make(model.Series, len(bars))
	highs := make(model.Series, len(bars))
	lows := make(model.Series, len(bars))
	closes := make(model.Series, len(bars))
	volumes := make(model.Series, len(bars))
	colors := make([]string, len(bars))
	for i, b := range bars {
		opens[i], highs[i], lows[i], closes[i], volumes[i] = b.Open, b.High, b.Low, b.Close, b.Volume
		colors[i] = colorUp
		if b.Close < b.Open {
			colors[i] = colorDown
		}
	}

	traces := []Trace{
		{
			Type: "candlestick", Name: a.Symbol, X: x,
			Open: opens, High: highs, Low: lows, Close: closes,
			XAxis: "x", YAxis: "y",
		},
		{
			Type: "scatter", Mode: "lines", Name: fmt.Sprintf("SMA %d", p.SMAFast), X: x, Y: ind.SMAFast,
			YAxis: "y", Line: &Line{Color: colorSMAFast, Width: 1.5},
		},
		{
			Type: "scatter", Mode: "lines", Name: fmt.Sprintf("SMA %d", p.SMASlow), X: x, Y: ind.SMASlow,
			YAxis: "y", Line: &Line{Color: colorSMASlow, Width: 1.5},
		},
		{
			Type: "scatter", Mode: "lines", Name: "BB Upper", X: x, Y: ind.Bollinger.Upper,
			YAxis: "y", Line: &Line{Color: colorBand, Width: 1},
		},
		// tonexty fills back to the preceding trace, the upper band
		{
			Type: "scatter", Mode: "lines", Name: "BB Lower", X: x, Y: ind.Bollinger.Lower,
			YAxis: "y", Line: &Line{Color: colorBand, Width: 1},
			Fill: "tonexty", FillColor: colorBandFill,
		},
		{
			Type: "scatter", Mode: "lines", Name: "BB Middle", X: x, Y: ind.Bollinger.Middle,
			YAxis: "y", Line: &Line{Color: colorBand, Width: 1, Dash: "dot"},
		},
		{
			Type: "bar", Name: "Volume", X: x, Y: volumes,
			YAxis: "y2", Marker: &Marker{Color: colors}, ShowLegend: hidden(),
		},
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:      Title{Text: fmt.Sprintf("%s price", a.Symbol)},
			Height:     600,
			ShowLegend: true,
			HoverMode:  "x unified",
			XAxis:      &Axis{RangeSlider: &Visible{Visible: false}, Anchor: "y2"},
			YAxis:      &Axis{Title: &Title{Text: "Price"}, Domain: []float64{0.3, 1}},
			YAxis2:     &Axis{Title: &Title{Text: "Volume"}, Domain: []float64{0, 0.25}},
		},
	}
}
