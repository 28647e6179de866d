package collector

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/model"
)

// DefaultYahooBaseURL is the public v8 chart endpoint.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

const yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	client *resty.Client
	now    func() time.Time
}

// YahooOptions configures a YahooFetcher. Zero values select defaults.
type YahooOptions struct {
	BaseURL string
	Timeout time.Duration
	Proxy   string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts YahooOptions) *YahooFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYahooBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": yahooUserAgent,
		})
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}
	return &YahooFetcher{client: client, now: time.Now}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *yahooError   `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooResult struct {
	Meta       yahooMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []yahooQuote `json:"quote"`
	} `json:"indicators"`
}

type yahooMeta struct {
	Currency             string `json:"currency"`
	Symbol               string `json:"symbol"`
	ExchangeName         string `json:"exchangeName"`
	FullExchangeName     string `json:"fullExchangeName"`
	InstrumentType       string `json:"instrumentType"`
	Timezone             string `json:"timezone"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	GMTOffset            int    `json:"gmtoffset"`
	LongName             string `json:"longName"`
	ShortName            string `json:"shortName"`
}

// Quote arrays hold null for days without trades.
type yahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// FetchHistory requests daily bars for the window [now-days, now].
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	ticker := MapSymbol(symbol)
	end := f.now()
	start := end.AddDate(0, 0, -days)

	var chart, failure yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", ticker).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.Unix(), 10),
			"interval": "1d",
		}).
		ForceContentType("application/json").
		SetResult(&chart).
		SetError(&failure).
		Get("/{symbol}")
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return nil, networkError(ticker, status, err)
	}

	log.Debug().
		Str("symbol", ticker).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("yahoo chart response")

	status := resp.StatusCode()
	switch {
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return nil, networkError(ticker, status, nil)
	case resp.IsError():
		return nil, notFound(ticker, status, describe(failure.Chart.Error))
	case chart.Chart.Error != nil:
		return nil, notFound(ticker, status, describe(chart.Chart.Error))
	case len(chart.Chart.Result) == 0:
		return nil, notFound(ticker, status, "")
	}

	result := chart.Chart.Result[0]
	loc := time.UTC
	if result.Meta.GMTOffset != 0 || result.Meta.Timezone != "" {
		loc = time.FixedZone(result.Meta.Timezone, result.Meta.GMTOffset)
	}
	bars := model.Normalize(result.bars(), loc)
	if len(bars) == 0 {
		return nil, notFound(ticker, status, "")
	}

	return &model.PriceSeries{
		Symbol:         symbol,
		ProviderSymbol: ticker,
		Source:         f.Name(),
		Info:           result.Meta.info(symbol, ticker),
		Bars:           bars,
		FetchedAt:      end,
	}, nil
}

func (r yahooResult) bars() []model.OHLCV {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		o, h, l, c := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // holidays and halted sessions
		}
		var vol float64
		if v := at(q.Volume, i); v != nil {
			vol = *v
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: vol,
		})
	}
	return bars
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func (m yahooMeta) info(symbol, ticker string) model.StockInfo {
	name := m.LongName
	if name == "" {
		name = m.ShortName
	}
	if name == "" {
		name = ticker
	}
	exchange := m.FullExchangeName
	if exchange == "" {
		exchange = m.ExchangeName
	}
	tz := m.ExchangeTimezoneName
	if tz == "" {
		tz = m.Timezone
	}
	return model.StockInfo{
		Symbol:         symbol,
		ProviderSymbol: ticker,
		Name:           name,
		Exchange:       exchange,
		Currency:       m.Currency,
		InstrumentType: m.InstrumentType,
		Timezone:       tz,
	}
}

func describe(e *yahooError) string {
	if e == nil {
		return ""
	}
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}
