// Package chart turns an analysis into Plotly figure specifications.
package chart

import "StockAnalyzer/internal/model"

// Colours shared by every figure.
const (
	colorUp       = "#26a69a"
	colorDown     = "#ef5350"
	colorSMAFast  = "#ff9800"
	colorSMASlow  = "#2196f3"
	colorBand     = "rgba(173, 204, 255, 0.8)"
	colorBandFill = "rgba(173, 204, 255, 0.15)"
	colorMACD     = "#2196f3"
	colorSignal   = "#ff5722"
	colorRSI      = "#7e57c2"
	colorNeutral  = "#9e9e9e"
)

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Only the fields relevant to the trace type are
// set.
type Trace struct {
	Type       string       `json:"type"`
	Name       string       `json:"name,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	X          []string     `json:"x"`
	Y          model.Series `json:"y,omitempty"`
	Open       model.Series `json:"open,omitempty"`
	High       model.Series `json:"high,omitempty"`
	Low        model.Series `json:"low,omitempty"`
	Close      model.Series `json:"close,omitempty"`
	XAxis      string       `json:"xaxis,omitempty"`
	YAxis      string       `json:"yaxis,omitempty"`
	Line       *Line        `json:"line,omitempty"`
	Marker     *Marker      `json:"marker,omitempty"`
	Fill       string       `json:"fill,omitempty"`
	FillColor  string       `json:"fillcolor,omitempty"`
	ShowLegend *bool        `json:"showlegend,omitempty"`
}

// Line styles a scatter line.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Marker styles points or bars. Color is a single colour or one per point.
type Marker struct {
	Color any     `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Layout is the subset of the Plotly layout the UI uses.
type Layout struct {
	Title      Title   `json:"title"`
	Height     int     `json:"height,omitempty"`
	ShowLegend bool    `json:"showlegend"`
	XAxis      *Axis   `json:"xaxis,omitempty"`
	YAxis      *Axis   `json:"yaxis,omitempty"`
	YAxis2     *Axis   `json:"yaxis2,omitempty"`
	YAxis3     *Axis   `json:"yaxis3,omitempty"`
	Shapes     []Shape `json:"shapes,omitempty"`
	HoverMode  string  `json:"hovermode,omitempty"`
	Template   string  `json:"template,omitempty"`
}

// Title is a layout or axis title.
type Title struct {
	Text string `json:"text"`
}

// Axis configures one axis.
type Axis struct {
	Title       *Title    `json:"title,omitempty"`
	Domain      []float64 `json:"domain,omitempty"`
	Range       []float64 `json:"range,omitempty"`
	RangeSlider *Visible  `json:"rangeslider,omitempty"`
	Type        string    `json:"type,omitempty"`
	Anchor      string    `json:"anchor,omitempty"`
}

// Visible toggles an axis feature.
type Visible struct {
	Visible bool `json:"visible"`
}

// Shape draws reference lines.
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   any     `json:"x0"`
	X1   any     `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Charts bundles the three figures shown for one analysis.
type Charts struct {
	Price      Figure `json:"price"`
	Indicators Figure `json:"indicators"`
	Outlook    Figure `json:"outlook"`
}

// Build renders every figure for a.
func Build(a *model.Analysis) Charts {
	return Charts{
		Price:      PriceChart(a),
		Indicators: IndicatorChart(a),
		Outlook:    OutlookChart(a),
	}
}

func hline(yref string, y float64, color string) Shape {
	return Shape{
		Type: "line", XRef: "paper", YRef: yref,
		X0: 0, X1: 1, Y0: y, Y1: y,
		Line: Line{Color: color, Width: 1, Dash: "dash"},
	}
}

func hidden() *bool {
	f := false
	return &f
}
