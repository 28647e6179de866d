package chart

import (
	"math"

	"StockAnalyzer/internal/model"
)

// IndicatorChart stacks RSI, MACD and the volume ratio in three subplots with
// their reference lines.
func IndicatorChart(a *model.Analysis) Figure {
	x := dates(a.Bars)
	ind := a.Indicators

	histColors := make([]string, len(ind.MACD.Histogram))
	for i, v := range ind.MACD.Histogram {
		switch {
		case math.IsNaN(v):
			histColors[i] = colorNeutral
		case v >= 0:
			histColors[i] = colorUp
		default:
			histColors[i] = colorDown
		}
	}

	traces := []Trace{
		{
			Type: "scatter", Mode: "lines", Name: "RSI", X: x, Y: ind.RSI,
			YAxis: "y", Line: &Line{Color: colorRSI, Width: 1.5},
		},
		{
			Type: "scatter", Mode: "lines", Name: "MACD", X: x, Y: ind.MACD.Line,
			YAxis: "y2", Line: &Line{Color: colorMACD, Width: 1.5},
		},
		{
			Type: "scatter", Mode: "lines", Name: "Signal", X: x, Y: ind.MACD.Signal,
			YAxis: "y2", Line: &Line{Color: colorSignal, Width: 1.5},
		},
		{
			Type: "bar", Name: "Histogram", X: x, Y: ind.MACD.Histogram,
			YAxis: "y2", Marker: &Marker{Color: histColors},
		},
		{
			Type: "scatter", Mode: "lines", Name: "Volume ratio", X: x, Y: ind.VolumeRatio,
			YAxis: "y3", Line: &Line{Color: colorNeutral, Width: 1.5},
		},
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:      Title{Text: "Technical indicators"},
			Height:     700,
			ShowLegend: true,
			HoverMode:  "x unified",
			XAxis:      &Axis{Anchor: "y3"},
			YAxis:      &Axis{Title: &Title{Text: "RSI"}, Domain: []float64{0.7, 1}, Range: []float64{0, 100}},
			YAxis2:     &Axis{Title: &Title{Text: "MACD"}, Domain: []float64{0.37, 0.63}},
			YAxis3:     &Axis{Title: &Title{Text: "Volume ratio"}, Domain: []float64{0, 0.3}},
			Shapes: []Shape{
				hline("y", 70, colorDown),
				hline("y", 50, colorNeutral),
				hline("y", 30, colorUp),
				hline("y3", 1, colorNeutral),
			},
		},
	}
}
