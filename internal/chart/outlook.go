package chart

import (
	"fmt"
	"time"

	"StockAnalyzer/internal/model"
)

const outlookWindow = 30

// OutlookChart plots the most recent closes and, when the outlook is
// sufficient, the projected next close joined by a dashed segment.
func OutlookChart(a *model.Analysis) Figure {
	bars := a.Bars
	if len(bars) > outlookWindow {
		bars = bars[len(bars)-outlookWindow:]
	}
	closes := make(model.Series, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	traces := []Trace{{
		Type: "scatter", Mode: "lines", Name: "Close", X: dates(bars), Y: closes,
		Line: &Line{Color: colorMACD, Width: 2},
	}}

	title := "Next-day outlook"
	if a.Outlook.Sufficient && len(bars) > 0 {
		last := bars[len(bars)-1]
		next := nextWeekday(last.Time).Format(dateLayout)
		color := colorNeutral
		switch {
		case a.Outlook.Prediction > last.Close:
			color = colorUp
		case a.Outlook.Prediction < last.Close:
			color = colorDown
		}
		traces = append(traces,
			Trace{
				Type: "scatter", Mode: "lines", Name: "Trend",
				X:    []string{last.Time.Format(dateLayout), next},
				Y:    model.Series{last.Close, a.Outlook.Prediction},
				Line: &Line{Color: color, Width: 2, Dash: "dash"}, ShowLegend: hidden(),
			},
			Trace{
				Type: "scatter", Mode: "markers", Name: "Projection",
				X:      []string{next},
				Y:      model.Series{a.Outlook.Prediction},
				Marker: &Marker{Color: color, Size: 12},
			},
		)
		title = fmt.Sprintf("Next-day outlook: %.2f (%s, confidence %.0f%%)",
			a.Outlook.Prediction, a.Outlook.Trend, a.Outlook.Confidence*100)
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:      Title{Text: title},
			Height:     400,
			ShowLegend: true,
			YAxis:      &Axis{Title: &Title{Text: "Price"}},
		},
	}
}

func nextWeekday(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
