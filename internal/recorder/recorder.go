package recorder

import "time"

// AnalysisEvent is one completed analysis request.
type AnalysisEvent struct {
	Timestamp      time.Time
	Symbol         string
	ProviderSymbol string
	Source         string
	Days           int
	Bars           int
	LastClose      float64
	RSI            float64 // NaN when undefined
	Trend          string
	RSISignal      string
	MACDSignal     string
	Prediction     float64
	Confidence     float64
	Cached         bool
}

// Recorder keeps an audit log of analyses.
type Recorder interface {
	RecordAnalysis(evt *AnalysisEvent) error
	Close() error
}
