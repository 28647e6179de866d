package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relianceChart = `{"chart":{"result":[{
  "meta":{"currency":"INR","symbol":"RELIANCE.NS","exchangeName":"NSI","fullExchangeName":"NSE",
          "instrumentType":"EQUITY","timezone":"IST","exchangeTimezoneName":"Asia/Kolkata",
          "gmtoffset":19800,"longName":"Reliance Industries Limited"},
  "timestamp":[1704167100,1704253500,1704339900,1704426300,1704445200],
  "indicators":{"quote":[{
    "open":  [100.0, 101.0, null, 102.0, 102.5],
    "high":  [102.0, 103.0, null, 104.0, 104.5],
    "low":   [ 99.0, 100.0, null, 101.0, 101.5],
    "close": [101.0, 102.0, null, 103.0, 103.5],
    "volume":[1000,  2000,  null, 3000,  null]
  }]}
}],"error":null}}`

const notFoundChart = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestYahoo(t *testing.T, handler http.HandlerFunc) (*YahooFetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := NewYahooFetcher(YahooOptions{BaseURL: srv.URL, Timeout: 2 * time.Second})
	f.now = func() time.Time { return time.Unix(1704844800, 0) }
	return f, srv
}

func yahooFixture(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch strings.TrimPrefix(r.URL.Path, "/") {
		case "RELIANCE.NS":
			q := r.URL.Query()
			assert.Equal(t, "1d", q.Get("interval"))
			assert.Equal(t, "1704844800", q.Get("period2"))
			assert.Equal(t, "1704240000", q.Get("period1"))
			_, _ = w.Write([]byte(relianceChart))
		case "EMPTY.NS":
			_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`))
		case "BROKEN.NS":
			w.WriteHeader(http.StatusBadGateway)
		case "GARBAGE.NS":
			_, _ = w.Write([]byte(`{"chart":`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(notFoundChart))
		}
	}
}

func TestYahooFetcher_FetchHistory(t *testing.T) {
	f, _ := newTestYahoo(t, yahooFixture(t))

	series, err := f.FetchHistory(context.Background(), "NSE:RELIANCE", 7)
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE.NS", series.ProviderSymbol)
	assert.Equal(t, "yahoo", series.Source)
	assert.Equal(t, "Reliance Industries Limited", series.Info.Name)
	assert.Equal(t, "NSE", series.Info.Exchange)
	assert.Equal(t, "INR", series.Info.Currency)
	assert.Equal(t, "Asia/Kolkata", series.Info.Timezone)

	// null bar dropped, two bars on Jan 5 collapse to the later one
	require.Len(t, series.Bars, 3)
	assert.Equal(t, 101.0, series.Bars[0].Close)
	assert.Equal(t, 102.0, series.Bars[1].Close)
	assert.Equal(t, 103.5, series.Bars[2].Close)
	assert.Zero(t, series.Bars[2].Volume)
	for i := 1; i < len(series.Bars); i++ {
		assert.True(t, series.Bars[i].Time.After(series.Bars[i-1].Time))
	}
}

func TestYahooFetcher_UnknownSymbol(t *testing.T) {
	f, _ := newTestYahoo(t, yahooFixture(t))

	_, err := f.FetchHistory(context.Background(), "ZZZZZZ123", 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNetwork)

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "ZZZZZZ123", pe.Symbol)
	assert.Equal(t, http.StatusNotFound, pe.Status)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooFetcher_ErrorMapping(t *testing.T) {
	f, _ := newTestYahoo(t, yahooFixture(t))

	cases := []struct {
		symbol string
		want   error
	}{
		{"EMPTY.NS", ErrNotFound},
		{"BROKEN.NS", ErrNetwork},
		{"GARBAGE.NS", ErrNetwork},
	}
	for _, tc := range cases {
		t.Run(tc.symbol, func(t *testing.T) {
			_, err := f.FetchHistory(context.Background(), tc.symbol, 30)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestYahooFetcher_Unreachable(t *testing.T) {
	f, srv := newTestYahoo(t, yahooFixture(t))
	srv.Close()

	_, err := f.FetchHistory(context.Background(), "TCS.NS", 30)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestMapSymbol(t *testing.T) {
	cases := map[string]string{
		"NSE:RELIANCE":  "RELIANCE.NS",
		"bse:tcs":       "TCS.BO",
		"NASDAQ:AAPL":   "AAPL",
		"NYSE:IBM":      "IBM",
		"LSE:VOD":       "VOD.L",
		"TSE:7203":      "7203.T",
		"ASX:BHP":       "BHP.AX",
		"MCX:GOLD":      "GOLD.NS",
		" infy.ns ":     "INFY.NS",
		"AAPL":          "AAPL",
		"^NSEI":         "^NSEI",
		"NSE: HDFCBANK": "HDFCBANK.NS",
	}
	for in, want := range cases {
		assert.Equal(t, want, MapSymbol(in), "input %q", in)
	}
}

func TestPopularStocks_ReturnsCopy(t *testing.T) {
	list := PopularStocks()
	require.Len(t, list, 15)
	list[0].Symbol = "CHANGED"
	assert.Equal(t, "RELIANCE.NS", PopularStocks()[0].Symbol)
}
