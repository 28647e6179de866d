package collector

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
)

// Invalidator is implemented by fetchers that cache history.
type Invalidator interface {
	Invalidate(ctx context.Context, symbol string, days int) error
	Purge(ctx context.Context) error
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Params   model.IndicatorParams
	Recorder recorder.Recorder
}

// NewCollector creates a new Collector. A nil recorder disables auditing.
func NewCollector(fetcher Fetcher, params model.IndicatorParams, rec recorder.Recorder) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Params: params, Recorder: rec}
}

// Analyze fetches days of history for symbol and derives indicators, summary
// statistics and the outlook. With refresh set any cached history is dropped
// first.
func (c *Collector) Analyze(ctx context.Context, symbol string, days int, refresh bool) (*model.Analysis, error) {
	symbol = strings.TrimSpace(symbol)
	if refresh {
		if inv, ok := c.Fetcher.(Invalidator); ok {
			if err := inv.Invalidate(ctx, symbol, days); err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("cache invalidation failed")
			}
		}
	}

	start := time.Now()
	series, err := c.Fetcher.FetchHistory(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	bars := series.Bars
	ind := calculator.Compute(bars, c.Params)
	a := &model.Analysis{
		Symbol:     series.ProviderSymbol,
		Days:       days,
		Source:     series.Source,
		Info:       series.Info,
		Bars:       bars,
		Quote:      calculator.Quote(bars, series.Info.Currency),
		Indicators: ind,
		Params:     c.Params,
		Summary:    calculator.Summarize(bars),
		Outlook:    calculator.Evaluate(bars, ind),
		FetchedAt:  series.FetchedAt,
		Cached:     series.Cached,
	}

	log.Info().
		Str("symbol", a.Symbol).
		Str("source", a.Source).
		Int("days", days).
		Int("bars", len(bars)).
		Bool("cached", a.Cached).
		Dur("elapsed", time.Since(start)).
		Msg("analysis computed")

	c.record(a)
	return a, nil
}

// Purge drops all cached history, if the fetcher caches.
func (c *Collector) Purge(ctx context.Context) (bool, error) {
	inv, ok := c.Fetcher.(Invalidator)
	if !ok {
		return false, nil
	}
	if err := inv.Purge(ctx); err != nil {
		return false, fmt.Errorf("purge cache: %w", err)
	}
	return true, nil
}

func (c *Collector) record(a *model.Analysis) {
	rsi := math.NaN()
	if v, ok := a.Indicators.RSI.Last(); ok {
		rsi = v
	}
	evt := &recorder.AnalysisEvent{
		Timestamp:      time.Now(),
		Symbol:         a.Info.Symbol,
		ProviderSymbol: a.Symbol,
		Source:         a.Source,
		Days:           a.Days,
		Bars:           len(a.Bars),
		RSI:            rsi,
		Trend:          a.Outlook.Trend,
		RSISignal:      a.Outlook.RSISignal,
		MACDSignal:     a.Outlook.MACDSignal,
		Prediction:     a.Outlook.Prediction,
		Confidence:     a.Outlook.Confidence,
		Cached:         a.Cached,
	}
	if a.Quote != nil {
		evt.LastClose = a.Quote.LastPrice
	}
	if err := c.Recorder.RecordAnalysis(evt); err != nil {
		log.Error().Err(err).Str("symbol", a.Symbol).Msg("record analysis")
	}
}
